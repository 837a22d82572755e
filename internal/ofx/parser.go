// Package ofx turns OFX/QFX bank and credit-card statements into ledger entries.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/Veraticus/smart-finance/internal/model"
	"github.com/aclindsa/ofxgo"
)

// FallbackCategory is used when a statement line names no payee at all.
const FallbackCategory = "Uncategorized"

var (
	severityRegex   = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex     = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// Entry is one statement line mapped onto the ledger's shape.
type Entry struct {
	Posted   time.Time
	ID       string
	Account  string
	Category string
	Amount   float64
	Kind     model.Kind
}

// Parser implements OFX/QFX file parsing.
type Parser struct {
	category string
}

// Option configures a Parser.
type Option func(*Parser)

// WithCategory files every entry under category instead of deriving one.
func WithCategory(category string) Option {
	return func(p *Parser) {
		p.category = category
	}
}

// NewParser creates a new OFX parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML files sometimes drop the closing bracket of a bare opening tag
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile parses an OFX/QFX statement and returns its entries in file order.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]Entry, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var entries []Entry
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			entries = append(entries, p.convertList(stmt.BankTranList, string(stmt.BankAcctFrom.AcctID))...)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			entries = append(entries, p.convertList(stmt.BankTranList, string(stmt.CCAcctFrom.AcctID))...)
		}
	}

	slog.Info("Parsed OFX file",
		"entries", len(entries),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return entries, nil
}

func (p *Parser) convertList(list *ofxgo.TransactionList, accountID string) []Entry {
	if list == nil {
		return nil
	}

	entries := make([]Entry, 0, len(list.Transactions))
	for _, ofxTx := range list.Transactions {
		entries = append(entries, p.convertTransaction(ofxTx, accountID))
	}
	return entries
}

// convertTransaction maps debits to expenses and credits to income.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, accountID string) Entry {
	amount, _ := ofxTx.TrnAmt.Float64()
	kind := model.KindIncome
	if amount < 0 {
		amount = -amount
		kind = model.KindExpense
	}

	category := p.category
	if category == "" {
		category = categoryFor(ofxTx)
	}

	return Entry{
		Posted:   ofxTx.DtPosted.Time,
		ID:       string(ofxTx.FiTID),
		Account:  accountID,
		Category: category,
		Amount:   amount,
		Kind:     kind,
	}
}

// categoryFor derives a single-token category from the transaction type or
// merchant name.
func categoryFor(tx ofxgo.Transaction) string {
	switch tx.TrnType.String() {
	case "INT":
		return "Interest"
	case "FEE":
		return "Bank-Fees"
	case "ATM":
		return "Cash"
	}

	merchant := extractMerchantName(tx)
	if merchant == "" {
		return FallbackCategory
	}
	return whitespaceRegex.ReplaceAllString(merchant, "-")
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func extractMerchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD "
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
