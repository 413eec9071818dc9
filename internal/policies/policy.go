// Package policies inspects the row-level-security policies protecting the
// hosted collection.
//
// Two sources are supported: the exec_sql RPC function exposed through the
// Supabase REST interface, and a direct Postgres connection. Neither is
// guaranteed to be available (exec_sql must be created by the project owner),
// so callers fall back to printing the query for manual execution.
package policies

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
)

// Policy is one row of pg_policies.
type Policy struct {
	SchemaName string  `db:"schemaname" json:"schemaname"`
	TableName  string  `db:"tablename" json:"tablename"`
	PolicyName string  `db:"policyname" json:"policyname"`
	Permissive string  `db:"permissive" json:"permissive"`
	Roles      Roles   `db:"roles" json:"roles"`
	Cmd        string  `db:"cmd" json:"cmd"`
	Qual       *string `db:"qual" json:"qual"`
	WithCheck  *string `db:"with_check" json:"with_check"`
}

// Roles is the name[] column of pg_policies. It scans from Postgres array
// literals and decodes from either a JSON array or an array literal string,
// depending on how exec_sql serialized it.
type Roles []string

// Scan implements sql.Scanner.
func (r *Roles) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return fmt.Errorf("scan roles: %w", err)
	}
	*r = Roles(arr)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Roles) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*r = list
		return nil
	}
	var literal string
	if err := json.Unmarshal(data, &literal); err != nil {
		return fmt.Errorf("roles: expected array or string: %w", err)
	}
	return r.Scan(literal)
}

// Source lists the policies defined on a table.
type Source interface {
	Name() string
	Policies(ctx context.Context, table string) ([]Policy, error)
}

const policiesQuery = `SELECT
  schemaname,
  tablename,
  policyname,
  permissive,
  roles,
  cmd,
  qual,
  with_check
FROM pg_policies
WHERE tablename = %s`

// ManualQuery returns the statement to paste into the dashboard SQL editor.
func ManualQuery(table string) string {
	return fmt.Sprintf(policiesQuery, pq.QuoteLiteral(table)) + ";"
}
