// Package shell implements the default cmd-based Action the YAML parser
// wraps a task's cmd field in, running the script through the system
// shell.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/dagrs-dev/dagrs/channel"
	"github.com/dagrs-dev/dagrs/content"
	"github.com/dagrs-dev/dagrs/env"
	"github.com/dagrs-dev/dagrs/node"
)

// Command runs Script through "sh -c" via os/exec. On success its Output carries
// the process's trimmed stdout as a string; a non-empty stderr or a
// non-zero exit fails the node with the stderr text (or the exec error)
// as payload.
type Command struct {
	Script string
	// Dir, if set, is the subprocess's working directory.
	Dir string
}

var _ node.Action = Command{}

// Run implements node.Action.
func (c Command) Run(ctx context.Context, in *channel.InChannels, out *channel.OutChannels, e *env.EnvVar) node.Output {
	cmd := exec.CommandContext(ctx, "sh", "-c", c.Script)
	cmd.Dir = c.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := stderr.String()
		if msg == "" {
			msg = err.Error()
		}
		return node.Err(node.ActionError, content.New(msg))
	}
	if stderr.Len() > 0 {
		return node.Err(node.ActionError, content.New(stderr.String()))
	}
	return node.Out(content.New(strings.TrimSpace(stdout.String())))
}

// String renders the command for logging/diagnostics.
func (c Command) String() string {
	return fmt.Sprintf("shell.Command(%q)", c.Script)
}
