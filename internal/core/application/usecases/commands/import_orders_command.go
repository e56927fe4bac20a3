package commands

import (
	"errors"
	"time"

	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/pkg/guard"
)

var (
	ErrImportOrdersCommandIsNotConstructed = errors.New(
		"ImportOrdersCommand must be created via NewImportOrdersCommand constructor",
	)
	ErrNoRowsToImport = errors.New("at least one row is required")
)

// OrderRow is one row of a bulk ingestion file, carrying its source line
// number so rejections can point back at the file.
type OrderRow struct {
	Line            int
	CustomerName    string
	PickupAddress   string
	DeliveryAddress string
	WeightKg        float64
	Priority        int
	RequestedDate   time.Time
}

// RowRejection reports why a single row was not admitted.
type RowRejection struct {
	Line   int
	Reason string
}

// ImportOrdersResult summarizes a bulk ingestion: the IDs of rows that became
// pending orders and the rows that were rejected, with the reason per row.
// A file where every row is rejected still yields a result, not an error.
type ImportOrdersResult struct {
	Admitted []kernel.UUID
	Rejected []RowRejection
}

// ImportOrdersCommand represents a bulk order ingestion request for a company.
// Rows are admitted independently: a bad row is rejected with a reason while
// the remaining rows proceed.
type ImportOrdersCommand struct { //nolint:recvcheck //using for validation
	companyID kernel.UUID
	rows      []OrderRow

	guard guard.ConstructorGuard
}

// NewImportOrdersCommand creates a bulk ingestion command.
// Requires a valid company ID and at least one row.
func NewImportOrdersCommand(companyID kernel.UUID, rows []OrderRow) (ImportOrdersCommand, error) {
	cmd := ImportOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCompanyID(companyID),
		cmd.setRows(rows),
	); err != nil {
		return ImportOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrImportOrdersCommandIsNotConstructed if validation fails.
func (c ImportOrdersCommand) Validate() error {
	return c.guard.Validate(ErrImportOrdersCommandIsNotConstructed)
}

// CompanyID returns the identifier of the owning transport company.
func (c ImportOrdersCommand) CompanyID() kernel.UUID {
	return c.companyID
}

// Rows returns the ingestion rows in file order.
func (c ImportOrdersCommand) Rows() []OrderRow {
	return c.rows
}

func (c *ImportOrdersCommand) setCompanyID(companyID kernel.UUID) error {
	if err := companyID.Validate(); err != nil {
		return err
	}

	c.companyID = companyID
	return nil
}

func (c *ImportOrdersCommand) setRows(rows []OrderRow) error {
	if len(rows) == 0 {
		return ErrNoRowsToImport
	}

	c.rows = rows
	return nil
}
