package cmd

import (
	"github.com/incognito1025/fauna-go/internal/application/handler"

	"github.com/spf13/cobra"
)

// recordCommand describes one subcommand that maps onto a dispatcher action.
type recordCommand struct {
	action  handler.Action
	use     string
	short   string
	aliases []string
}

var recordCommands = []recordCommand{
	{action: handler.ActionList, use: "list", short: "List every animal as \"<id> <name>\"", aliases: []string{"index"}},
	{action: handler.ActionCreate, use: "create <name>", short: "Add an animal and print it"},
	{action: handler.ActionShow, use: "show <id>", short: "Show one animal with its points"},
	{action: handler.ActionUpdate, use: "update <id> <new_name>", short: "Rename an animal and recompute its points", aliases: []string{"edit"}},
	{action: handler.ActionDestroy, use: "destroy <id>", short: "Remove an animal from the collection"},
	{action: handler.ActionTotal, use: "total", short: "Print the sum of all points", aliases: []string{"score"}},
	{action: handler.ActionInit, use: "init", short: "Create an empty collection if none exists"},
}

func newRecordCommands(a *app) []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(recordCommands))
	for _, rc := range recordCommands {
		action := rc.action
		cmds = append(cmds, &cobra.Command{
			Use:     rc.use,
			Short:   rc.short,
			Aliases: rc.aliases,
			Args:    cobra.ExactArgs(action.Arity()),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, handler.Command{Action: action, Args: args})
			},
		})
	}
	return cmds
}
