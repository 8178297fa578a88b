package command

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/chordedit/chord/internal/editor/buffer"
	"github.com/chordedit/chord/internal/event"
)

// RegisterLua compiles a Lua script and registers it as a command. The
// script runs in a fresh interpreter each time with the editor API bound
// as globals and positional arguments in an "args" table.
func (r *Runner) RegisterLua(name, source string) error {
	L := lua.NewState()
	defer L.Close()
	if _, err := L.LoadString(source); err != nil {
		return fmt.Errorf("compile %s: %w", name, err)
	}

	return r.Register(name, func(ctx *Context, args []string) error {
		return runLua(name, source, ctx, args)
	})
}

// LoadDir registers every *.lua file in dir as a command named after its
// base name. A missing directory registers nothing.
func (r *Runner) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".lua") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(entry.Name(), ".lua")
		if err := r.RegisterLua(name, string(data)); err != nil {
			return err
		}
	}
	return nil
}

func runLua(name, source string, ctx *Context, args []string) error {
	L := lua.NewState()
	defer L.Close()
	bindEditorAPI(L, ctx)

	tbl := L.NewTable()
	for _, a := range args {
		tbl.Append(lua.LString(a))
	}
	L.SetGlobal("args", tbl)

	if err := L.DoString(source); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}

// bindEditorAPI exposes the editor to a script. Lines and columns are
// 0-indexed on the Lua side too, matching cursor positions everywhere
// else.
func bindEditorAPI(L *lua.LState, ctx *Context) {
	L.SetGlobal("insert", L.NewFunction(func(L *lua.LState) int {
		if ctx.Buffer != nil {
			ctx.Buffer.Insert(L.CheckString(1))
		}
		return 0
	}))

	L.SetGlobal("text", L.NewFunction(func(L *lua.LState) int {
		if ctx.Buffer == nil {
			L.Push(lua.LString(""))
			return 1
		}
		L.Push(lua.LString(ctx.Buffer.Text()))
		return 1
	}))

	L.SetGlobal("line", L.NewFunction(func(L *lua.LState) int {
		if ctx.Buffer == nil {
			L.Push(lua.LString(""))
			return 1
		}
		L.Push(lua.LString(ctx.Buffer.Line(ctx.Buffer.Cursor().Line)))
		return 1
	}))

	L.SetGlobal("cursor", L.NewFunction(func(L *lua.LState) int {
		var pos buffer.Position
		if ctx.Buffer != nil {
			pos = ctx.Buffer.Cursor()
		}
		L.Push(lua.LNumber(pos.Line))
		L.Push(lua.LNumber(pos.Col))
		return 2
	}))

	L.SetGlobal("move", L.NewFunction(func(L *lua.LState) int {
		if ctx.Buffer != nil {
			ctx.Buffer.SetCursor(buffer.Position{
				Line: L.CheckInt(1),
				Col:  L.CheckInt(2),
			})
		}
		return 0
	}))

	L.SetGlobal("notice", L.NewFunction(func(L *lua.LState) int {
		if ctx.Queue != nil {
			// Best effort; a full queue drops the notice.
			_ = ctx.Queue.TrySend(event.Notice("lua", L.CheckString(1)))
		}
		return 0
	}))
}
