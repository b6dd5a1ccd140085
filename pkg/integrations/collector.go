package integrations

import (
	"context"
	"sync"
)

// CommandCollector records every command it is asked to run instead of
// running it. It stands in for the real tools in tests.
//
//	collector := &integrations.CommandCollector{}
//	wget := integrations.NewWget(collector)
//	_ = wget.Download(ctx, url, dir)
//	collector.Commands()[0].String() // "wget --no-check-certificate -c -P dir url"
type CommandCollector struct {
	mutex       sync.RWMutex
	commands    []*Command
	delegateRun func(context.Context, *Command) error
}

// Commands returns a copy of the commands seen so far.
func (c *CommandCollector) Commands() []*Command {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	result := make([]*Command, len(c.commands))
	copy(result, c.commands)
	return result
}

// ClearCommands forgets the commands seen so far.
func (c *CommandCollector) ClearCommands() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.commands = nil
}

// SetDelegateRun installs a function called for every Run, for example to
// create the file a download would have produced or to simulate a failure.
func (c *CommandCollector) SetDelegateRun(delegateRun func(context.Context, *Command) error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.delegateRun = delegateRun
}

func (c *CommandCollector) Run(ctx context.Context, command *Command) error {
	c.mutex.Lock()
	c.commands = append(c.commands, command)
	delegateRun := c.delegateRun
	c.mutex.Unlock()
	if delegateRun == nil {
		return nil
	}
	return delegateRun(ctx, command)
}
