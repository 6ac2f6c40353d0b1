package profile

import (
	"context"
	"strconv"
	"time"

	"emsconsole/internal/domain/forms"
	"emsconsole/internal/domain/session"
	"emsconsole/internal/gateway"
	"emsconsole/internal/validation"
)

const (
	MsgBasicFailed     = "Failed to update basic info."
	MsgPersonalFailed  = "Failed to save personal info."
	MsgEducationFailed = "Failed to save education info."
)

type Service struct {
	client *gateway.Client
	now    func() time.Time
}

func NewService(client *gateway.Client) *Service {
	return &Service{client: client, now: time.Now}
}

func (s *Service) Me(ctx context.Context, sess session.Session) (gateway.Employee, error) {
	return s.client.WithToken(sess.Token).MyProfile(ctx)
}

func (s *Service) SaveBasic(ctx context.Context, sess session.Session, in gateway.BasicInfo) (gateway.Employee, error) {
	api := s.client.WithToken(sess.Token)
	return forms.Submit(ctx, validation.Must("basic_info"), BasicValues(in), validation.Env{}, MsgBasicFailed,
		func(ctx context.Context) (gateway.Employee, error) { return api.SaveBasicInfo(ctx, in) })
}

func (s *Service) SavePersonal(ctx context.Context, sess session.Session, in gateway.PersonalInfo) (gateway.Employee, error) {
	api := s.client.WithToken(sess.Token)
	return forms.Submit(ctx, validation.Must("personal_info"), PersonalValues(in), validation.Env{Now: s.now}, MsgPersonalFailed,
		func(ctx context.Context) (gateway.Employee, error) { return api.SavePersonalInfo(ctx, in) })
}

func (s *Service) SaveEducation(ctx context.Context, sess session.Session, in gateway.EducationInfo) (gateway.Employee, error) {
	api := s.client.WithToken(sess.Token)
	return forms.Submit(ctx, validation.Must("education_info"), EducationValues(in), validation.Env{}, MsgEducationFailed,
		func(ctx context.Context) (gateway.Employee, error) { return api.SaveEducationInfo(ctx, in) })
}

func BasicValues(in gateway.BasicInfo) validation.Values {
	return validation.Values{
		"firstName":     in.FirstName,
		"lastName":      in.LastName,
		"email":         in.Email,
		"contactNumber": in.ContactNumber,
	}
}

func PersonalValues(in gateway.PersonalInfo) validation.Values {
	return validation.Values{
		"fatherName":    in.FatherName,
		"fatherContact": in.FatherContact,
		"motherName":    in.MotherName,
		"motherContact": in.MotherContact,
		"address":       in.Address,
		"dateOfBirth":   in.DateOfBirth,
	}
}

func EducationValues(in gateway.EducationInfo) validation.Values {
	return validation.Values{
		"uDegree":     in.UDegree,
		"uCollege":    in.UCollege,
		"uYear":       in.UYear,
		"uCGPA":       decimal(in.UCGPA),
		"pDegree":     in.PDegree,
		"pCollege":    in.PCollege,
		"pYear":       in.PYear,
		"pCGPA":       decimal(in.PCGPA),
		"phdResearch": in.PhdResearch,
		"phdCollege":  in.PhdCollege,
		"phdYear":     in.PhdYear,
		"phdResult":   in.PhdResult,
	}
}

func decimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
