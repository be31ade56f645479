package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/vektah/gqlparser/v2/ast"
	gqlparser "github.com/vektah/gqlparser/v2/parser"

	"p2pswap/pkg/logger"
)

// GraphQLRequest is the body POSTed to the indexer
type GraphQLRequest struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
	OperationName string                 `json:"operationName,omitempty"`
}

// GraphQLError is a single entry of a GraphQL errors array
type GraphQLError struct {
	Message string `json:"message"`
}

// GraphQLResponse is the indexer's response envelope
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// IndexerError carries the errors array of a failed query
type IndexerError struct {
	Errors []GraphQLError
}

func (e *IndexerError) Error() string {
	messages := make([]string, 0, len(e.Errors))
	for _, gqlErr := range e.Errors {
		messages = append(messages, gqlErr.Message)
	}
	return "indexer error: " + strings.Join(messages, "; ")
}

// operationNames caches the operation name of every document seen so far
var operationNames sync.Map

// OperationName parses document and returns the name of its first operation
func OperationName(document string) (string, error) {
	if name, ok := operationNames.Load(document); ok {
		return name.(string), nil
	}

	doc, perr := gqlparser.ParseQuery(&ast.Source{Name: "indexer", Input: document})
	if perr != nil {
		return "", fmt.Errorf("invalid indexer query: %w", perr)
	}
	if len(doc.Operations) == 0 {
		return "", fmt.Errorf("invalid indexer query: no operation defined")
	}

	name := doc.Operations[0].Name
	operationNames.Store(document, name)
	return name, nil
}

// QueryIndexer runs a GraphQL document against the indexer and decodes data into out
func (c *Client) QueryIndexer(ctx context.Context, document string, variables map[string]interface{}, out interface{}) error {
	operationName, err := OperationName(document)
	if err != nil {
		return err
	}

	logger.Logger.Debug("Querying indexer", "endpoint", c.indexerURL, "operation", operationName, "variables", variables)

	var resp GraphQLResponse
	req := GraphQLRequest{
		Query:         document,
		Variables:     variables,
		OperationName: operationName,
	}
	if err := c.doJSON(ctx, http.MethodPost, c.indexerURL, req, &resp); err != nil {
		return fmt.Errorf("indexer query %s failed: %w", operationName, err)
	}

	if len(resp.Errors) > 0 {
		return &IndexerError{Errors: resp.Errors}
	}

	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to decode indexer data: %w", err)
	}
	return nil
}
