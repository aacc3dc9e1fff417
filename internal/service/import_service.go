package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// importColumns is the expected sheet layout, one user per row, first row
// being the header.
const importColumns = 10

// ImportOptions carries the role-specific targets the sheet itself does not
// name. ClassID applies to student rows, DepartmentID to lecturer rows.
type ImportOptions struct {
	ClassID      int
	DepartmentID int
}

// RowError reports one rejected sheet row. Row numbers are 1-based as shown
// in the spreadsheet program.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarizes one bulk import run.
type ImportResult struct {
	Created int        `json:"created"`
	Errors  []RowError `json:"errors"`
}

// ImportService bulk-creates users from an xlsx sheet.
type ImportService struct {
	accountService *AccountService
	log            zerolog.Logger
}

// NewImportService creates a new ImportService.
func NewImportService(accountService *AccountService, log zerolog.Logger) *ImportService {
	return &ImportService{
		accountService: accountService,
		log:            log.With().Str("component", "import_service").Logger(),
	}
}

// ImportUsers reads the first sheet of an xlsx file and creates one user per
// row. Rows that fail validation or collide with existing usernames are
// skipped and reported; the rest are still created.
func (s *ImportService) ImportUsers(ctx context.Context, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	result := &ImportResult{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		req, err := parseUserRow(row, opts)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: i + 1, Message: err.Error()})
			continue
		}
		if _, err := s.accountService.CreateUser(ctx, req); err != nil {
			result.Errors = append(result.Errors, RowError{Row: i + 1, Message: err.Error()})
			continue
		}
		result.Created++
	}

	s.log.Info().
		Int("created", result.Created).
		Int("rejected", len(result.Errors)).
		Msg("user import finished")

	return result, nil
}

// parseUserRow maps one sheet row onto a create request. Layout:
//
//	name | username | password | role | code | birthday | email | phone | gender | position
//
// Birthday uses dd/mm/yyyy. A student row whose position cell reads
// "Lớp trưởng" becomes the class monitor.
func parseUserRow(row []string, opts ImportOptions) (*model.CreateUserRequest, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	if len(row) > importColumns {
		return nil, fmt.Errorf("expected at most %d columns, got %d", importColumns, len(row))
	}

	role := model.Role(strings.ToLower(cell(3)))
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", cell(3))
	}

	req := &model.CreateUserRequest{
		Role:     role,
		Name:     cell(0),
		Username: cell(1),
		Password: cell(2),
		Code:     cell(4),
		Birthday: cell(5),
		Email:    cell(6),
		Phone:    cell(7),
		Gender:   cell(8),
	}
	if req.Name == "" || req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("name, username and password are required")
	}
	if req.Gender != "" && req.Gender != model.GenderMale && req.Gender != model.GenderFemale {
		return nil, fmt.Errorf("invalid gender %q", req.Gender)
	}

	switch role {
	case model.RoleStudent:
		if opts.ClassID == 0 {
			return nil, fmt.Errorf("student rows need a target class")
		}
		req.ClassID = opts.ClassID
		req.IsMonitor = strings.EqualFold(cell(9), "Lớp trưởng")
	case model.RoleLecturer:
		if opts.DepartmentID == 0 {
			return nil, fmt.Errorf("lecturer rows need a target department")
		}
		req.DepartmentID = opts.DepartmentID
	}

	return req, nil
}
