package mode

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/tokenizer"
)

// DefaultScriptTimeout bounds loading a script and each toggle_comment call.
const DefaultScriptTimeout = time.Second

// Lua is a mode defined by a Lua script. The script may set the globals
//
//	name          mode name (defaults to the script's base name)
//	language      chroma lexer name used for tokenizing
//	line_comment  comment prefix used when toggle_comment is absent
//
// and may define toggle_comment(lines), which receives the rows as a
// table of strings and returns the rewritten rows and the column delta.
//
// gopher-lua states are not goroutine-safe; calls are serialized.
type Lua struct {
	mu sync.Mutex
	L  *lua.LState

	path      string
	name      string
	prefix    string
	tokenizer tokenizer.Tokenizer
	toggle    *lua.LFunction
	timeout   time.Duration
	lastErr   error
	closed    bool
}

// LoadLuaFile reads and runs the script at path.
func LoadLuaFile(path string) (*Lua, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &ScriptError{Path: path, Err: err}
	}
	return LoadLua(path, string(src))
}

// LoadLua runs src in a fresh sandboxed state, allowing the top-level chunk
// DefaultScriptTimeout to finish. path is used for the default name and
// error messages.
func LoadLua(path, src string) (*Lua, error) {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultScriptTimeout)
	defer cancel()
	return LoadLuaContext(ctx, path, src)
}

// LoadLuaContext is LoadLua with the top-level chunk bounded by ctx.
func LoadLuaContext(ctx context.Context, path, src string) (*Lua, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	L.SetContext(ctx)
	err := L.DoString(src)
	L.RemoveContext()
	if err != nil {
		L.Close()
		return nil, &ScriptError{Path: path, Err: err}
	}

	m := &Lua{
		L:       L,
		path:    path,
		timeout: DefaultScriptTimeout,
	}

	m.name = globalString(L, "name")
	if m.name == "" {
		m.name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	m.prefix = globalString(L, "line_comment")

	if language := globalString(L, "language"); language != "" {
		m.tokenizer = tokenizer.NewChroma(language)
	} else {
		m.tokenizer = tokenizer.Plain{}
	}

	switch fn := L.GetGlobal("toggle_comment").(type) {
	case *lua.LFunction:
		m.toggle = fn
	case *lua.LNilType:
	default:
		L.Close()
		return nil, &ScriptError{Path: path, Err: fmt.Errorf("toggle_comment is a %s, not a function", fn.Type())}
	}

	return m, nil
}

// openSafeLibraries opens the libraries a mode script may use. io, os,
// debug and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

func globalString(L *lua.LState, name string) string {
	if s, ok := L.GetGlobal(name).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// Name implements Mode.
func (m *Lua) Name() string { return m.name }

// Tokenizer implements Mode.
func (m *Lua) Tokenizer() tokenizer.Tokenizer { return m.tokenizer }

// SetTimeout changes the per-call script timeout.
func (m *Lua) SetTimeout(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d > 0 {
		m.timeout = d
	}
}

// LastError returns the error from the most recent failed script call.
func (m *Lua) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// ToggleCommentLines implements Mode. A script failure leaves the document
// unchanged, returns 0 and is reported by LastError.
func (m *Lua) ToggleCommentLines(doc Lines, r buffer.Range) int {
	if m.toggle == nil {
		return TogglePrefix(doc, r.Start.Row, r.End.Row, m.prefix)
	}

	first := max(r.Start.Row, 0)
	last := min(r.End.Row, doc.Length()-1)
	if first > last {
		return 0
	}
	rows := make([]string, 0, last-first+1)
	for row := first; row <= last; row++ {
		rows = append(rows, doc.Line(row))
	}

	out, delta, err := m.callToggle(rows)
	m.mu.Lock()
	m.lastErr = err
	m.mu.Unlock()
	if err != nil {
		return 0
	}

	doc.ReplaceRows(first, last, out)
	return delta
}

func (m *Lua) callToggle(rows []string) (out []string, delta int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, 0, &ScriptError{Path: m.path, Err: ErrModeClosed}
	}

	defer func() {
		if r := recover(); r != nil {
			err = &ScriptError{Path: m.path, Err: fmt.Errorf("lua panic: %v", r)}
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()
	m.L.SetContext(ctx)
	defer m.L.RemoveContext()

	in := m.L.NewTable()
	for _, row := range rows {
		in.Append(lua.LString(row))
	}

	if err := m.L.CallByParam(lua.P{Fn: m.toggle, NRet: 2, Protect: true}, in); err != nil {
		return nil, 0, &ScriptError{Path: m.path, Err: err}
	}
	ret, n := m.L.Get(-2), m.L.Get(-1)
	m.L.Pop(2)

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return nil, 0, &ScriptError{Path: m.path, Err: fmt.Errorf("toggle_comment returned %s, want table", ret.Type())}
	}
	if tbl.Len() != len(rows) {
		return nil, 0, &ScriptError{Path: m.path, Err: fmt.Errorf("toggle_comment returned %d rows, want %d", tbl.Len(), len(rows))}
	}
	num, ok := n.(lua.LNumber)
	if !ok {
		return nil, 0, &ScriptError{Path: m.path, Err: fmt.Errorf("toggle_comment delta is %s, want number", n.Type())}
	}

	out = make([]string, 0, len(rows))
	for i := 1; i <= tbl.Len(); i++ {
		v := tbl.RawGetInt(i)
		if t := v.Type(); t != lua.LTString && t != lua.LTNumber {
			return nil, 0, &ScriptError{Path: m.path, Err: fmt.Errorf("toggle_comment row %d is %s, want string", i, t)}
		}
		out = append(out, lua.LVAsString(v))
	}
	return out, int(num), nil
}

// Close releases the Lua state.
func (m *Lua) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		m.L.Close()
	}
}
