package offer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"p2pswap/pkg/logger"
	"p2pswap/pkg/network"
)

// DefaultTableHandle is the swap contract's offer table
const DefaultTableHandle = "0xb1f502b4e7f8604123412509ec2aebb651b3e162014b88d565cff2d2544745af"

const queryTemplate = `query Offer($offer_id: jsonb!) {
  current_table_items(
    where: {table_handle: {_eq: "%s"}, decoded_key: {_eq: $offer_id}}
  ) {
    decoded_key
    decoded_value
  }
}`

// Query returns the offer lookup document filtered by tableHandle
func Query(tableHandle string) string {
	return fmt.Sprintf(queryTemplate, tableHandle)
}

// Service looks offers up on the indexer of whichever network the wallet is on
type Service struct {
	registry *network.Registry
	reporter network.Reporter
	document string
}

// NewService creates an offer service. An empty tableHandle uses DefaultTableHandle.
func NewService(registry *network.Registry, reporter network.Reporter, tableHandle string) *Service {
	if tableHandle == "" {
		tableHandle = DefaultTableHandle
	}
	return &Service{
		registry: registry,
		reporter: reporter,
		document: Query(tableHandle),
	}
}

// FetchOffer queries the indexer for offerID and decodes the result. No matching row is not
// an error; it yields an empty view. Query failures are returned as-is, wrapped.
func (s *Service) FetchOffer(ctx context.Context, offerID string) (View, error) {
	id, ledger := s.registry.Resolve(s.reporter)

	logger.Logger.Debug("Fetching offer", "offer_id", offerID, "network", id)

	var result QueryResult
	variables := map[string]interface{}{"offer_id": offerID}
	if err := ledger.QueryIndexer(ctx, s.document, variables, &result); err != nil {
		return View{}, fmt.Errorf("failed to fetch offer %s on %s: %w", offerID, id, err)
	}

	return Decode(result)
}

// Decode maps the indexer rows into a View. When several rows come back the last one wins,
// tokens included: earlier rows' send_tokens are not accumulated.
func Decode(result QueryResult) (View, error) {
	view := View{Tokens: []Token{}}

	for _, item := range result.CurrentTableItems {
		record := item.DecodedValue

		coins, err := parseCoins(record.ExtraSenderPay)
		if err != nil {
			return View{}, err
		}

		tokens := make([]Token, 0, len(record.SendTokens))
		for _, token := range record.SendTokens {
			tokens = append(tokens, Token{
				Collection: token.TokenDataID.Collection,
				Name:       token.TokenDataID.Name,
			})
		}

		view = View{
			Sender: record.Sender,
			Coins:  coins,
			Tokens: tokens,
		}
	}

	return view, nil
}

// parseCoins parses a u64 amount; an empty amount is zero
func parseCoins(amount string) (uint64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, nil
	}
	coins, err := strconv.ParseUint(amount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid extra_sender_pay '%s': %w", amount, err)
	}
	return coins, nil
}
