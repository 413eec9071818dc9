package policies

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

const none = "(none)"

// Render prints every policy as a field/value table, or hints when the table
// has no policies at all.
func Render(w io.Writer, tableName string, policies []Policy) {
	if len(policies) == 0 {
		fmt.Fprintf(w, "No RLS policies found for table %s\n\n", tableName)
		fmt.Fprintln(w, "Hints:")
		fmt.Fprintln(w, "  - row level security may not be enabled on the table")
		fmt.Fprintln(w, "  - or no policies have been created yet")
		return
	}

	fmt.Fprintf(w, "Found %d policies on %s\n", len(policies), tableName)
	for i, p := range policies {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.SetTitle(fmt.Sprintf("Policy %d: %s", i+1, p.PolicyName))
		t.AppendRows([]table.Row{
			{"Schema", p.SchemaName},
			{"Table", p.TableName},
			{"Type", p.Permissive},
			{"Roles", formatRoles(p.Roles)},
			{"Command", p.Cmd},
			{"USING", orNone(p.Qual)},
			{"WITH CHECK", orNone(p.WithCheck)},
		})
		fmt.Fprintln(w)
		t.Render()
	}
}

// RenderFailure explains that the policies could not be read and prints the
// query to run by hand.
func RenderFailure(w io.Writer, tableName string, err error) {
	fmt.Fprintf(w, "Query failed: %v\n\n", err)
	fmt.Fprintln(w, "Run the following query in the Supabase dashboard SQL editor:")
	rule := strings.Repeat("-", 80)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, ManualQuery(tableName))
	fmt.Fprintln(w, rule)
}

func orNone(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return none
	}
	return *s
}

func formatRoles(roles Roles) string {
	if len(roles) == 0 {
		return none
	}
	return "[" + strings.Join(roles, ", ") + "]"
}
