package console

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/vovakirdan/something/internal/core"
)

// state lazily creates the Lua VM and registers the game bindings.
func (c *Console) state() *lua.LState {
	if c.vm != nil {
		return c.vm
	}
	vm := lua.NewState(lua.Options{})
	for name, fn := range map[string]lua.LGFunction{
		"print":       c.luaPrint,
		"exec":        c.luaExec,
		"reset":       c.luaReset,
		"spawn_enemy": c.luaSpawnEnemy,
		"set":         c.luaSet,
		"get":         c.luaGet,
		"tile":        c.luaTile,
		"place":       c.luaPlace,
		"player":      c.luaPlayer,
	} {
		vm.SetGlobal(name, vm.NewFunction(fn))
	}
	c.vm = vm
	return vm
}

// RunLua executes a Lua chunk.
func (c *Console) RunLua(code string) error {
	if err := c.state().DoString(code); err != nil {
		return fmt.Errorf("lua: %w", err)
	}
	return nil
}

// RunFile executes a Lua script file.
func (c *Console) RunFile(path string) error {
	if err := c.state().DoFile(path); err != nil {
		return fmt.Errorf("lua %s: %w", path, err)
	}
	c.logger.Info("ran script", "path", path)
	return nil
}

// print(...) writes its arguments to the scrollback, tab separated.
func (c *Console) luaPrint(L *lua.LState) int {
	top := L.GetTop()
	parts := make([]string, 0, top)
	for i := 1; i <= top; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	c.Println(strings.Join(parts, "\t"))
	return 0
}

// exec(line) runs a console command and returns true on success.
func (c *Console) luaExec(L *lua.LState) int {
	err := c.Exec(L.CheckString(1))
	L.Push(lua.LBool(err == nil))
	return 1
}

func (c *Console) luaReset(L *lua.LState) int {
	c.env.World.ResetEntities()
	return 0
}

// spawn_enemy(x, y) spawns an enemy centered on pixel position (x, y) and
// returns its slot.
func (c *Console) luaSpawnEnemy(L *lua.LState) int {
	x := float64(L.CheckNumber(1))
	y := float64(L.CheckNumber(2))
	idx := c.env.World.SpawnEnemyAt(core.V2(x, y))
	L.Push(lua.LNumber(idx.Slot()))
	return 1
}

// set(name, value) assigns a tunable. Errors are raised into Lua.
func (c *Console) luaSet(L *lua.LState) int {
	name := L.CheckString(1)
	value := L.ToStringMeta(L.CheckAny(2)).String()
	if err := c.env.Vars.Set(name, value); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// get(name) returns a tunable's current value, or nil if it does not exist.
func (c *Console) luaGet(L *lua.LState) int {
	v, err := c.env.Vars.Lookup(L.CheckString(1))
	if err != nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(v.Value()))
	return 1
}

// tile(x, y) returns the name of the tile at grid cell (x, y), or nil
// outside the grid.
func (c *Console) luaTile(L *lua.LState) int {
	w := c.env.World
	x, y := L.CheckInt(1), L.CheckInt(2)
	if !w.Grid.InBounds(x, y) {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(w.Tiles.Def(w.Grid.Get(x, y)).Name))
	return 1
}

// place(x, y, name) sets grid cell (x, y) to the named tile.
func (c *Console) luaPlace(L *lua.LState) int {
	w := c.env.World
	x, y, name := L.CheckInt(1), L.CheckInt(2), L.CheckString(3)
	id, ok := w.Tiles.Lookup(name)
	if !ok {
		L.ArgError(3, fmt.Sprintf("unknown tile %q", name))
		return 0
	}
	if !w.Grid.InBounds(x, y) {
		L.RaiseError("cell (%d, %d) is outside the grid", x, y)
		return 0
	}
	w.Grid.Set(x, y, id)
	return 0
}

// player() returns x, y and hp of the live player, or nil.
func (c *Console) luaPlayer(L *lua.LState) int {
	p, ok := c.env.World.PlayerEntity()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	center := p.Hitbox().Center()
	L.Push(lua.LNumber(center.X))
	L.Push(lua.LNumber(center.Y))
	L.Push(lua.LNumber(p.HP))
	return 3
}
