package commands

import (
	"fmt"
	"sort"
	"strings"

	"deckbox-api/internal/scrapers/deckbox"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	page    int
	sortBy  string
	order   string
	filters []string
)

func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page to fetch.")
	cmd.Flags().StringVar(&sortBy, "sort-by", "name", "One of name, type, cost, edition, rarity, count, price or color.")
	cmd.Flags().StringVar(&order, "order", "asc", "asc or desc.")
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "Filter as <category>:<operator>:<value>[,<value>], repeatable.")
}

func pageRequest() (deckbox.PageRequest, error) {
	req := deckbox.PageRequest{
		Page:          page,
		SortField:     deckbox.SortField(sortBy),
		SortDirection: deckbox.SortDirection(order),
	}
	for _, raw := range filters {
		expr, err := deckbox.ParseFilterExpr(raw)
		if err != nil {
			return deckbox.PageRequest{}, err
		}
		req.Filters = append(req.Filters, expr)
	}
	return req, nil
}

func init() {
	addPageFlags(setCmd)
	addPageFlags(searchCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(filtersCmd)
}

func pageFooter[T any](t table.Writer, p deckbox.PagedResult[T]) {
	total := "total unknown"
	if p.Total != deckbox.UnknownTotal {
		total = fmt.Sprintf("%d total", p.Total)
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("page %d of %d", p.Page, p.TotalPages), total})
}

func nullable(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func flags(c deckbox.CollectionCard) string {
	out := []string{}
	if c.IsFoil {
		out = append(out, "foil")
	}
	if c.IsPromo {
		out = append(out, "promo")
	}
	if c.IsTextless {
		out = append(out, "textless")
	}
	if c.IsSigned {
		out = append(out, "signed")
	}
	return strings.Join(out, ",")
}

func renderBoard(title string, board deckbox.Board) {
	t := newTable(table.Row{"Count", title})
	for _, c := range board.Cards {
		t.AppendRow(table.Row{c.Count, c.Name})
	}
	t.AppendFooter(table.Row{board.Total, fmt.Sprintf("%d distinct", board.Distinct)})
	t.Render()
}

func renderSearch(p deckbox.SearchPage) {
	t := newTable(table.Row{"Name", "Type", "Cost"})
	for _, c := range p.Items {
		typeLine := strings.Join(c.Types, " ")
		if len(c.Subtypes) > 0 {
			typeLine += " - " + strings.Join(c.Subtypes, " ")
		}
		t.AppendRow(table.Row{c.Name, typeLine, c.ManaCost})
	}
	pageFooter(t, p)
	t.Render()
}

var setCmd = &cobra.Command{
	Use:   "set <username> <set id or name>",
	Short: "Prints the cards of one of a user's sets.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := pageRequest()
		if err != nil {
			return err
		}
		result, err := client.UserSet(cmd.Context(), args[0], args[1], req)
		if err != nil {
			return err
		}

		switch result := result.(type) {
		case deckbox.InvalidSet:
			return fmt.Errorf("%s", result.Description)
		case deckbox.EmptySet:
			fmt.Printf("set %s (%s) has no recognizable content\n", result.Set.Name, result.Set.ID)
		case *deckbox.DeckResult:
			fmt.Println(result.Title)
			renderBoard("Mainboard", result.Mainboard)
			renderBoard("Sideboard", result.Sideboard)
		case *deckbox.CollectionPage:
			t := newTable(table.Row{"Count", "Name", "Edition", "Rarity", "Condition", "Language", "Flags"})
			for _, c := range result.Items {
				t.AppendRow(table.Row{
					c.Count,
					c.Name,
					nullable(c.Edition.Name),
					nullable(c.Rarity),
					nullable(c.Condition.Code),
					nullable(c.Language.Code),
					flags(c),
				})
			}
			pageFooter(t, *result)
			t.Render()
		case *deckbox.SearchPage:
			renderSearch(*result)
		}
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Searches the card database.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := pageRequest()
		if err != nil {
			return err
		}
		result, err := client.Search(cmd.Context(), req)
		if err != nil {
			return err
		}
		renderSearch(result)
		return nil
	},
}

var cardCmd = &cobra.Command{
	Use:   "card <name>",
	Short: "Prints the details of a single card.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		card, err := client.Card(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		editions := make([]string, len(card.Editions))
		for i, e := range card.Editions {
			editions[i] = fmt.Sprintf("%s (%s)", e.Name, e.Code)
		}

		t := newTable(table.Row{"Field", "Value"})
		t.AppendRows([]table.Row{
			{"Name", card.Name},
			{"Cost", card.ManaCost},
			{"Types", strings.Join(card.Types, " ")},
			{"Subtypes", strings.Join(card.Subtypes, " ")},
			{"Rules", card.RulesText},
			{"Editions", strings.Join(editions, "\n")},
			{"Legal in", strings.Join(card.Legality.Legal, ", ")},
			{"Restricted in", strings.Join(card.Legality.Restricted, ", ")},
		})
		if card.PowerToughness != nil {
			t.AppendRow(table.Row{"P / T", card.PowerToughness.Power + " / " + card.PowerToughness.Toughness})
		}
		keys := make([]string, 0, len(card.Extra))
		for k := range card.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			t.AppendRow(table.Row{k, card.Extra[k]})
		}
		t.Render()
		return nil
	},
}

var filtersCmd = &cobra.Command{
	Use:   "filters [category]",
	Short: "Prints the labels accepted by one_of, none_of and all_of filters.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := client.Catalog(cmd.Context())
		if err != nil {
			return err
		}

		t := newTable(table.Row{"Category", "Label", "Code"})
		for category, labels := range catalog.Categories {
			if len(args) > 0 && args[0] != category {
				continue
			}
			for label, code := range labels {
				t.AppendRow(table.Row{category, label, code})
			}
		}
		t.SortBy([]table.SortBy{{Name: "Category"}, {Name: "Label"}})
		t.Render()
		return nil
	},
}
