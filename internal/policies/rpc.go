package policies

import (
	"context"
	"fmt"

	"github.com/lib/pq"
)

// ExecSQLFunction is the database function the RPC source calls. It is not
// part of a stock Supabase project.
const ExecSQLFunction = "exec_sql"

// RPCCaller calls a database function over the REST interface.
// supabase.Client implements it.
type RPCCaller interface {
	RPC(ctx context.Context, function string, params any, out any) error
}

// RPCSource reads pg_policies through the exec_sql function.
type RPCSource struct {
	caller RPCCaller
}

func NewRPCSource(caller RPCCaller) *RPCSource {
	return &RPCSource{caller: caller}
}

func (s *RPCSource) Name() string {
	return "rpc/" + ExecSQLFunction
}

func (s *RPCSource) Policies(ctx context.Context, table string) ([]Policy, error) {
	// exec_sql takes a single SQL string, so the table is inlined as a quoted literal.
	sql := fmt.Sprintf(policiesQuery, pq.QuoteLiteral(table))

	var policies []Policy
	if err := s.caller.RPC(ctx, ExecSQLFunction, map[string]string{"sql": sql}, &policies); err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}
	return policies, nil
}
