package graph

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

var errFailOn = errors.New("mock failure")

type executedQuery struct {
	Query  string
	Params map[string]any
}

// MockDriver records every query it is asked to run. Results are served per
// call from ResultQueue, then MockResult. FailOn makes queries containing
// the given fragment fail.
type MockDriver struct {
	Executed    []executedQuery
	MockResult  neo4j.EagerResult
	ResultQueue []neo4j.EagerResult
	Err         error
	FailOn      string
	Closed      bool
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error) {
	m.Executed = append(m.Executed, executedQuery{Query: query, Params: params})
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	if m.FailOn != "" && strings.Contains(query, m.FailOn) {
		return neo4j.EagerResult{}, errFailOn
	}
	if len(m.ResultQueue) > 0 {
		res := m.ResultQueue[0]
		m.ResultQueue = m.ResultQueue[1:]
		return res, nil
	}
	return m.MockResult, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	m.Closed = true
	return nil
}

func (m *MockDriver) Last() executedQuery {
	return m.Executed[len(m.Executed)-1]
}

func records(keys []string, rows ...[]any) neo4j.EagerResult {
	res := neo4j.EagerResult{Keys: keys}
	for _, row := range rows {
		res.Records = append(res.Records, &neo4j.Record{Keys: keys, Values: row})
	}
	return res
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
