// Package script implements a scripted Action using
// github.com/yuin/gopher-lua, an embeddable scripting engine, rather
// than shipping a full JavaScript runtime.
package script

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dagrs-dev/dagrs/channel"
	"github.com/dagrs-dev/dagrs/content"
	"github.com/dagrs-dev/dagrs/env"
	"github.com/dagrs-dev/dagrs/node"
)

// Lua runs Script in a fresh *lua.LState per invocation and returns the
// value the script assigns to the global "result" as its Output
// payload. The payload is always a string: numbers, bools and other
// values are converted to their Lua string form, and an unset result
// yields "".
type Lua struct {
	Script string
}

var _ node.Action = Lua{}

// Run implements node.Action.
func (l Lua) Run(ctx context.Context, in *channel.InChannels, out *channel.OutChannels, e *env.EnvVar) node.Output {
	state := lua.NewState()
	defer state.Close()
	state.SetContext(ctx)

	if err := state.DoString(l.Script); err != nil {
		return node.Err(node.ActionError, content.New(err.Error()))
	}

	result := state.GetGlobal("result")
	return node.Out(content.New(luaToGo(result)))
}

func luaToGo(v lua.LValue) string {
	switch v.Type() {
	case lua.LTNil:
		return ""
	default:
		return fmt.Sprint(v.String())
	}
}
