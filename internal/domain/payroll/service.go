package payroll

import (
	"bytes"
	"context"
	"strings"

	"emsconsole/internal/domain/forms"
	"emsconsole/internal/domain/listing"
	"emsconsole/internal/domain/session"
	"emsconsole/internal/gateway"
	"emsconsole/internal/validation"
)

type Service struct {
	client *gateway.Client
	seq    *listing.Sequencer
}

func NewService(client *gateway.Client, seq *listing.Sequencer) *Service {
	return &Service{client: client, seq: seq}
}

func (s *Service) Process(ctx context.Context, sess session.Session, in gateway.ProcessPayrollRequest) (gateway.Payroll, error) {
	in.EmployeeID = strings.TrimSpace(in.EmployeeID)
	in.Month = strings.TrimSpace(in.Month)
	api := s.client.WithToken(sess.Token)
	return forms.Submit(ctx, validation.Must("process_payroll"), Values(in), validation.Env{}, MsgProcessFailed,
		func(ctx context.Context) (gateway.Payroll, error) { return api.ProcessPayroll(ctx, in) })
}

// EmployeeOptions lists every employee for the process form's dropdown.
func (s *Service) EmployeeOptions(ctx context.Context, sess session.Session) ([]EmployeeOption, error) {
	employees, err := s.client.WithToken(sess.Token).AllEmployees(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]EmployeeOption, 0, len(employees))
	for _, e := range employees {
		out = append(out, EmployeeOption{
			ID:           e.ID,
			EmployeeCode: e.EmployeeCode,
			Name:         strings.TrimSpace(e.FirstName + " " + e.LastName),
		})
	}
	return out, nil
}

// List loads one page of payroll records with the department options used
// by the filter.
func (s *Service) List(ctx context.Context, sess session.Session, req listing.PageRequest, f listing.Filter) (ListView, error) {
	api := s.client.WithToken(sess.Token)
	return listing.Load(s.seq, ctx, sess.ID+":payroll", func(ctx context.Context) (ListView, error) {
		page, enums, err := listing.FanOut(ctx,
			func(ctx context.Context) (gateway.PayrollPage, error) { return api.ListPayrolls(ctx, req.Page, req.Limit) },
			api.Enums,
		)
		if err != nil {
			return ListView{}, err
		}
		rows := listing.Apply(page.Payrolls, func(p gateway.Payroll) bool { return matches(f, p) })
		return ListView{
			Page:        listing.Page[gateway.Payroll]{Items: rows, Pager: listing.NewPager(req, page.TotalPages)},
			Departments: append([]string{listing.AllDepartments}, enums.Departments...),
			Filter:      f,
		}, nil
	})
}

func (s *Service) EmployeePayroll(ctx context.Context, sess session.Session, id int64) (gateway.Payroll, error) {
	return s.client.WithToken(sess.Token).EmployeePayroll(ctx, id)
}

func (s *Service) Mine(ctx context.Context, sess session.Session) (History, error) {
	records, err := s.client.WithToken(sess.Token).MyPayrolls(ctx)
	if err != nil {
		return History{}, err
	}
	return History{Records: records, Summary: Summarize(records)}, nil
}

func (s *Service) Slip(ctx context.Context, sess session.Session, id int64) (gateway.Payroll, error) {
	return s.client.WithToken(sess.Token).SalarySlip(ctx, id)
}

// Download fetches the upstream slip document.
func (s *Service) Download(ctx context.Context, sess session.Session, id int64) (gateway.Slip, error) {
	slip, err := s.client.WithToken(sess.Token).DownloadSlip(ctx, id)
	if err != nil {
		return gateway.Slip{}, forms.NewFault(err, MsgDownloadFailed)
	}
	return slip, nil
}

// Statement renders the session user's payroll history as a PDF.
func (s *Service) Statement(ctx context.Context, sess session.Session) ([]byte, error) {
	history, err := s.Mine(ctx, sess)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := RenderStatement(&buf, sess.User, history); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
