package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/lbliii/milodocs/internal/products"
	"github.com/lbliii/milodocs/internal/tui"
)

func main() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	product := fs.String("product", "", "restrict answers to one product ("+products.List()+")")
	fs.Parse(os.Args[1:]) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	client := tui.NewClient()

	// a question on the command line, or no terminal, answers once and exits
	if query := strings.Join(fs.Args(), " "); query != "" || !term.IsTerminal(os.Stdout.Fd()) {
		if query == "" {
			fmt.Println("Usage: ask [-product name] <question>")
			os.Exit(1)
		}

		answer, err := client.Ask(context.Background(), query, *product)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(answer)
		return
	}

	app := tui.NewApp(client)
	app.SetProductFilter(*product)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("error running ask: %v\n", err)
		os.Exit(1)
	}
}
