package expr

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/zeebo/xxh3"
)

// Program is a lexed expression ready to be evaluated against any number
// of targets. A Program is immutable and safe for concurrent use.
type Program struct {
	src    string
	toks   []Token
	config config
}

// CacheSize is the number of compiled programs retained by the package
// cache. The oldest entry is evicted first.
const CacheSize = 512

// programs caches compiled programs by the xxh3 hash of their source.
var programs = newProgramCache(CacheSize)

type programCache struct {
	mu      sync.Mutex
	entries map[uint64]*Program
	order   []uint64 // ring of keys in insertion order
	next    int
}

func newProgramCache(size int) *programCache {
	return &programCache{
		entries: make(map[uint64]*Program, size),
		order:   make([]uint64, 0, size),
	}
}

func (c *programCache) load(key uint64) (*Program, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.entries[key]

	return p, ok
}

func (c *programCache) store(key uint64, p *Program) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cap(c.order) == 0 {
		return
	}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = p

		return
	}

	if len(c.order) < cap(c.order) {
		c.order = append(c.order, key)
	} else {
		delete(c.entries, c.order[c.next])
		c.order[c.next] = key
		c.next = (c.next + 1) % len(c.order)
	}

	c.entries[key] = p
}

func (c *programCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *programCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
	c.order = c.order[:0]
	c.next = 0
}

// Compile lexes src once for repeated evaluation.
func Compile(src string, opts ...Option) (*Program, error) {
	cfg := makeConfig(opts...)
	key := xxh3.HashString(src)

	if cfg.cache {
		if prog, ok := programs.load(key); ok {
			if prog.src == src {
				cfg.logger.Trace("expression cache hit",
					slog.String("expression", src),
					slog.Uint64("hash", key),
				)

				return &Program{src: prog.src, toks: prog.toks, config: cfg}, nil
			}
		}
	}

	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}

	prog := &Program{src: src, toks: toks, config: cfg}

	if cfg.cache {
		programs.store(key, prog)
	}

	cfg.logger.Trace("expression compiled",
		slog.String("expression", src),
		slog.Int("tokens", len(toks)),
	)

	return prog, nil
}

// ClearCache discards every cached program.
func ClearCache() {
	programs.clear()
}

// String returns the source of the program.
func (p *Program) String() string { return p.src }

// Tokens returns a copy of the unresolved tokens of the program.
func (p *Program) Tokens() []Token { return slices.Clone(p.toks) }

func (p *Program) evaluator(target, scope any) *evaluator {
	if scope == nil {
		scope = map[string]any{}
	}

	return &evaluator{target: target, scope: scope, src: p.src}
}

// Evaluate computes the value of the program. Identifiers resolve against
// scope first and target second.
func (p *Program) Evaluate(target, scope any) (any, error) {
	e := p.evaluator(target, scope)

	path, err := e.path(Resolve(p.toks, e.target, e.scope))
	if err != nil {
		return nil, err
	}

	if len(path) != 1 {
		return nil, e.illegal(0, "expression does not reduce to a single value")
	}

	p.config.logger.Trace("expression evaluated",
		slog.String("expression", p.src),
		slog.String("type", Type(path[0])),
	)

	return path[0], nil
}

// Path reduces the program to the path it addresses. A leading identifier
// names a key of target or scope rather than being read as a value.
func (p *Program) Path(target, scope any) (Path, error) {
	e := p.evaluator(target, scope)

	return e.path(Resolve(asPath(p.toks), e.target, e.scope))
}

// Get reads the value at the path the program addresses.
func (p *Program) Get(target, scope any) (any, error) {
	path, err := p.Path(target, scope)
	if err != nil {
		return nil, err
	}

	if scope == nil {
		scope = map[string]any{}
	}

	v, err := Read(target, path, scope)
	if err != nil {
		p.config.logger.Debug("path read failed",
			slog.String("expression", p.src),
			slog.Any("error", err),
		)

		return nil, err
	}

	return v, nil
}

// Set assigns value at the path the program addresses and returns the
// updated target, which is a new container when target was nil or when
// the root itself had to grow.
func (p *Program) Set(target, value, scope any) (any, error) {
	path, err := p.Path(target, scope)
	if err != nil {
		return nil, err
	}

	p.config.logger.Trace("expression assignment",
		slog.String("expression", p.src),
		slog.String("path", path.String()),
	)

	out, err := Write(target, path, value)
	if err != nil {
		p.config.logger.Debug("path write failed",
			slog.String("expression", p.src),
			slog.Any("error", err),
		)

		return nil, err
	}

	return out, nil
}

// Evaluate compiles expression and evaluates it against target and scope.
// A nil scope is empty.
func Evaluate(target any, expression string, scope any, opts ...Option) (any, error) {
	p, err := Compile(expression, opts...)
	if err != nil {
		return nil, err
	}

	return p.Evaluate(target, scope)
}

// GetValue reads the value addressed by expression, such as "a.b[0]".
func GetValue(target any, expression string, scope any, opts ...Option) (any, error) {
	p, err := Compile(expression, opts...)
	if err != nil {
		return nil, err
	}

	return p.Get(target, scope)
}

// SetValue assigns value at the path addressed by expression, creating
// missing containers, and returns the updated target.
func SetValue(target any, expression string, value, scope any, opts ...Option) (any, error) {
	p, err := Compile(expression, opts...)
	if err != nil {
		return nil, err
	}

	return p.Set(target, value, scope)
}
