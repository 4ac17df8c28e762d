package audit

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kumar0311chandan/company-org-analyzer/internal/model"
)

// ParseResult holds the employees read from an input together with one
// diagnostic per line that could not be turned into an Employee.
type ParseResult struct {
	Employees []model.Employee
	Errors    []model.Diagnostic
}

// Parser reads employee CSV data: a header line followed by
// id,firstName,lastName,salary[,managerId] rows.
type Parser struct {
	logger  *zap.Logger
	maxLine int
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithParserLogger sets the logger used for per-line debug output.
func WithParserLogger(l *zap.Logger) ParserOption {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMaxLineLength caps the length of a single input line in bytes.
func WithMaxLineLength(n int) ParserOption {
	return func(p *Parser) {
		if n > 0 {
			p.maxLine = n
		}
	}
}

// NewParser creates a Parser.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{logger: zap.NewNop(), maxLine: model.MaxLineLength}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile opens path and parses it.
func (p *Parser) ParseFile(path string) (ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ParseResult{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return p.Parse(f)
}

// Parse reads every line of r. Bad lines, including lines longer than the
// parser's limit, are recorded and skipped; the returned error is non-nil
// only when r itself fails.
func (p *Parser) Parse(r io.Reader) (ParseResult, error) {
	var res ParseResult

	lr := model.NewLineReader(r, p.maxLine)
	lineNo := 0
	for {
		line, err := lr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		lineNo++
		if errors.Is(err, model.ErrLineTooLong) {
			if lineNo == 1 {
				continue
			}
			p.logger.Debug("skipping oversized line", zap.Int("line", lineNo))
			res.Errors = append(res.Errors, model.ParseErrorDiagnostic(lineNo,
				fmt.Errorf("%w: longer than %d bytes", model.ErrLineTooLong, p.maxLine)))
			continue
		}
		if err != nil {
			return res, fmt.Errorf("read input at line %d: %w", lineNo, err)
		}
		if lineNo == 1 || strings.TrimSpace(line) == "" {
			continue
		}

		e, err := parseLine(line)
		if err != nil {
			p.logger.Debug("skipping malformed line", zap.Int("line", lineNo), zap.Error(err))
			res.Errors = append(res.Errors, model.ParseErrorDiagnostic(lineNo, err))
			continue
		}
		res.Employees = append(res.Employees, e)
	}

	p.logger.Debug("parsed input",
		zap.Int("lines", lineNo),
		zap.Int("employees", len(res.Employees)),
		zap.Int("errors", len(res.Errors)))
	return res, nil
}

// parseLine splits on commas keeping trailing empty fields, so
// "5,A,B,100," is a row without a manager.
func parseLine(line string) (model.Employee, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 4 {
		return model.Employee{}, fmt.Errorf("%w: expected at least 4 fields, got %d", model.ErrMalformedRecord, len(fields))
	}

	id, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil {
		return model.Employee{}, fmt.Errorf("%w: id %q is not an integer", model.ErrMalformedRecord, strings.TrimSpace(fields[0]))
	}

	salaryText := strings.TrimSpace(fields[3])
	salary, err := strconv.ParseFloat(salaryText, 64)
	if err != nil {
		return model.Employee{}, fmt.Errorf("%w: salary %q is not a number", model.ErrMalformedRecord, salaryText)
	}

	var managerID *int64
	if len(fields) > 4 {
		if text := strings.TrimSpace(fields[4]); text != "" {
			m, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return model.Employee{}, fmt.Errorf("%w: manager id %q is not an integer", model.ErrMalformedRecord, text)
			}
			managerID = &m
		}
	}

	return model.NewEmployee(id, strings.TrimSpace(fields[1]), strings.TrimSpace(fields[2]), salary, managerID)
}
