package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/coinpartners/trader/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation topics" }
func (*topicCmd) Usage() string {
	return `topic [-list] [<topic>...]

  Renders the given documentation topics in the terminal. With no
  arguments it shows the readme; "*" renders every topic in one go.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "only print the available topic names")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	names, err := docs.GetAllTopics()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing topics: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.list {
		fmt.Println(strings.Join(names, "\n"))
		return subcommands.ExitSuccess
	}

	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}
	doc, err := docs.GetTopics(topics...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\navailable topics: %s\n", err, strings.Join(names, ", "))
		return subcommands.ExitFailure
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
