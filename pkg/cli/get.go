package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/shaie/browze/pkg/api"
	"github.com/shaie/browze/pkg/browze"
	"github.com/shaie/browze/pkg/constants"
	"github.com/shaie/browze/pkg/tui"
	"github.com/shaie/browze/pkg/zkpath"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Get() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [path]",
		Short: "Print a node, its children, data and stat",
		Args:  cobra.MaximumNArgs(1),
		PreRun: func(cmd *cobra.Command, args []string) {
			bindFlags(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.GetViper()
			client, err := browze.GetClient(v)
			if err != nil {
				return err
			}

			path := zkpath.Root
			if len(args) == 1 {
				path = args[0]
			}
			node, err := client.Client.Browse(context.Background(), path, v.GetBool(constants.FlagFullHierarchy))
			if err != nil {
				client.UI.Error(err.Error())
				return err
			}

			out, err := render(node, v.GetString(constants.FlagOutput))
			if err != nil {
				return err
			}
			client.UI.Output(out)
			return nil
		},
	}

	cmd.Flags().Bool(constants.FlagFullHierarchy, false, "fetch the tree from the root down to path")
	cmd.Flags().StringP(constants.FlagOutput, "o", "table", "output format, one of table, json, yaml")

	return cmd
}

func render(node *api.ZkNode, format string) (string, error) {
	switch format {
	case "json":
		b, err := json.MarshalIndent(node, "", "  ")
		if err != nil {
			return "", errors.Wrap(err, "marshal json")
		}
		return string(b), nil
	case "yaml":
		b, err := yaml.Marshal(node)
		if err != nil {
			return "", errors.Wrap(err, "marshal yaml")
		}
		return strings.TrimRight(string(b), "\n"), nil
	case "table", "":
		return renderTable(node), nil
	default:
		return "", errors.Errorf("unknown output format %q", format)
	}
}

func renderTable(node *api.ZkNode) string {
	b := &strings.Builder{}

	tree := uitable.New()
	tree.AddRow("PATH", "TYPE")
	if node.Tree != nil {
		addTreeRows(tree, node.Tree, 0)
	}
	b.WriteString(tree.String())
	b.WriteString("\n\n")

	b.WriteString("DATA\n")
	switch data := node.Data.(type) {
	case nil:
		b.WriteString("(no data)")
	case string:
		b.WriteString(data)
	default:
		b.WriteString(fmt.Sprint(data))
	}

	if node.Stat != nil {
		b.WriteString("\n\n")
		b.WriteString(tui.StatTable(node.Stat).String())
	}
	return b.String()
}

func addTreeRows(table *uitable.Table, node *api.Node, depth int) {
	kind := "dir"
	if node.Leaf {
		kind = "leaf"
	}
	table.AddRow(strings.Repeat("  ", depth)+node.FullPath(), kind)
	for _, child := range node.Children {
		addTreeRows(table, child, depth+1)
	}
}
