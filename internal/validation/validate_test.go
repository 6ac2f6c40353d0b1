package validation

import (
	"testing"
	"time"
)

var fixedNow = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

func TestEmbeddedSchemasLoad(t *testing.T) {
	want := []string{
		"add_employee", "apply_leave", "basic_info", "change_password", "edit_leave",
		"education_info", "forgot_password", "leave_type", "login", "personal_info",
		"process_payroll", "update_employee", "verify_otp",
	}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("expected %d schemas, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected schema %q at %d, got %q", want[i], i, got[i])
		}
	}
}

func TestParseSchemaRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "no name", doc: "fields: []"},
		{name: "unknown kind", doc: "name: x\nfields:\n  - name: a\n    kind: colour"},
		{name: "dangling reference", doc: "name: x\nfields:\n  - name: a\n    kind: date\n    not_before: b"},
		{name: "duplicate field", doc: "name: x\nfields:\n  - name: a\n    kind: text\n  - name: a\n    kind: text"},
		{name: "match without equals", doc: "name: x\nfields:\n  - name: a\n    kind: match"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseSchema([]byte(tc.doc)); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}
}

func TestRequiredTextField(t *testing.T) {
	s := Must("leave_type")
	tests := []struct {
		value string
		want  string
	}{
		{value: "", want: "Leave type is required"},
		{value: "   ", want: "Leave type is required"},
		{value: "ab", want: "Minimum 3 characters required"},
		{value: " ab ", want: "Minimum 3 characters required"},
		{value: "abc", want: ""},
		{value: "Casual", want: ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.value, func(t *testing.T) {
			got := ValidateField(s, "leaveType", Values{"leaveType": tc.value}, Env{})
			if got != tc.want {
				t.Fatalf("value %q: expected %q, got %q", tc.value, tc.want, got)
			}
		})
	}
}

func TestAddEmployeeShortFirstNameBlocksSubmission(t *testing.T) {
	values := Values{
		"firstName":   "Al",
		"lastName":    "Smith",
		"email":       "al@example.com",
		"joiningDate": "2024-01-15",
	}
	r := ValidateForm(Must("add_employee"), values, Env{})
	if r.OK() {
		t.Fatal("expected form to fail")
	}
	if r.Errors["firstName"] != "Minimum 3 characters" {
		t.Fatalf("unexpected firstName error %q", r.Errors["firstName"])
	}
	if len(r.Errors) != 1 {
		t.Fatalf("expected only firstName to fail, got %v", r.Errors)
	}
	err := r.Err()
	if err == nil || err.Error() != GenericMessage {
		t.Fatalf("expected generic validation error, got %v", err)
	}
}

func TestEmptyFormReportsEveryRequiredField(t *testing.T) {
	s := Must("personal_info")
	r := ValidateForm(s, Values{}, Env{Now: fixedNow})
	for _, f := range s.Fields {
		if !f.Required {
			continue
		}
		if r.Errors[f.Name] == "" {
			t.Fatalf("expected error for untouched required field %s", f.Name)
		}
	}
	issues := r.Issues()
	if len(issues) != len(r.Errors) || issues[0].Field != "fatherName" {
		t.Fatalf("expected issues in schema order, got %+v", issues)
	}
}

func TestLeaveDateRange(t *testing.T) {
	s := Must("apply_leave")
	tests := []struct {
		name string
		from string
		to   string
		want string
	}{
		{name: "to before from", from: "2024-05-10", to: "2024-05-05", want: "To date cannot be before From date"},
		{name: "same day", from: "2024-05-10", to: "2024-05-10"},
		{name: "after", from: "2024-05-10", to: "2024-05-12"},
		{name: "missing to", from: "2024-05-10", want: "To date is required"},
		{name: "bad format", from: "2024-05-10", to: "10/05/2024", want: "Enter a valid date"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateField(s, "toDate", Values{"fromDate": tc.from, "toDate": tc.to}, Env{})
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestCGPABoundaries(t *testing.T) {
	s := Must("education_info")
	tests := []struct {
		value string
		want  string
	}{
		{value: "", want: ""},
		{value: "0", want: ""},
		{value: "10", want: ""},
		{value: "7.5", want: ""},
		{value: "10.01", want: "CGPA must be between 0 and 10"},
		{value: "-1", want: "CGPA must be between 0 and 10"},
		{value: "abc", want: "Undergraduate CGPA must be a number"},
		{value: "NaN", want: "Undergraduate CGPA must be a number"},
		{value: "nan", want: "Undergraduate CGPA must be a number"},
		{value: "Inf", want: "Undergraduate CGPA must be a number"},
		{value: "0x1p3", want: "Undergraduate CGPA must be a number"},
		{value: "1e0", want: "Undergraduate CGPA must be a number"},
		{value: " 8.25 ", want: ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.value, func(t *testing.T) {
			got := ValidateField(s, "uCGPA", Values{"uCGPA": tc.value}, Env{})
			if got != tc.want {
				t.Fatalf("value %q: expected %q, got %q", tc.value, tc.want, got)
			}
		})
	}
}

func TestPartiallyFilledEducationGroup(t *testing.T) {
	if f, ok := Must("education_info").Field("uDegree"); !ok || f.Group != "undergraduate" {
		t.Fatalf("expected uDegree in the undergraduate group, got %+v", f)
	}
	values := Values{"uDegree": "BSc", "uCGPA": "0"}
	r := ValidateForm(Must("education_info"), values, Env{})
	if !r.OK() {
		t.Fatalf("expected partially filled group to pass, got %v", r.Errors)
	}

	values["uYear"] = "21"
	r = ValidateForm(Must("education_info"), values, Env{})
	if r.Errors["uYear"] != "Enter valid 4 digit year" {
		t.Fatalf("expected year error once entered, got %v", r.Errors)
	}
}

func TestDateOfBirthNotInFuture(t *testing.T) {
	s := Must("personal_info")
	env := Env{Now: fixedNow}
	if got := ValidateField(s, "dateOfBirth", Values{"dateOfBirth": "2024-06-01"}, env); got != "" {
		t.Fatalf("today should be valid, got %q", got)
	}
	if got := ValidateField(s, "dateOfBirth", Values{"dateOfBirth": "2024-06-02"}, env); got != "Date of Birth cannot be in the future" {
		t.Fatalf("unexpected error %q", got)
	}
}

func TestPhoneDigitRulesPerForm(t *testing.T) {
	twelve := "123456789012"
	if got := ValidateField(Must("add_employee"), "contactNumber", Values{"contactNumber": twelve}, Env{}); got != "Contact number must be 10 digits" {
		t.Fatalf("add employee: unexpected %q", got)
	}
	if got := ValidateField(Must("update_employee"), "contactNumber", Values{"contactNumber": twelve}, Env{}); got != "" {
		t.Fatalf("update employee should allow 12 digits, got %q", got)
	}
	if got := ValidateField(Must("update_employee"), "contactNumber", Values{"contactNumber": "12345"}, Env{}); got != "Invalid contact number" {
		t.Fatalf("update employee: unexpected %q", got)
	}
	if got := ValidateField(Must("add_employee"), "contactNumber", Values{}, Env{}); got != "" {
		t.Fatalf("optional phone should pass when empty, got %q", got)
	}
}

func TestEmailPatterns(t *testing.T) {
	loose := Must("add_employee")
	strict := Must("update_employee")
	if got := ValidateField(loose, "email", Values{"email": "a@b.c"}, Env{}); got != "" {
		t.Fatalf("loose pattern should accept a@b.c, got %q", got)
	}
	if got := ValidateField(strict, "email", Values{"email": "a@b.c"}, Env{}); got != "Invalid email format" {
		t.Fatalf("strict pattern should reject a@b.c, got %q", got)
	}
	if got := ValidateField(strict, "email", Values{"email": "Jane.Doe@Example.COM"}, Env{}); got != "" {
		t.Fatalf("strict pattern is case-insensitive, got %q", got)
	}
}

func TestChoiceUsesLoadedOptions(t *testing.T) {
	s := Must("update_employee")
	env := Env{Options: map[string][]string{"departments": {"Engineering", "HR"}}}
	if got := ValidateField(s, "department", Values{"department": "HR"}, env); got != "" {
		t.Fatalf("expected loaded option to pass, got %q", got)
	}
	if got := ValidateField(s, "department", Values{"department": "Sales"}, env); got != "Select a valid option" {
		t.Fatalf("expected option error, got %q", got)
	}
	if got := ValidateField(Must("edit_leave"), "status", Values{"status": "Cancelled"}, Env{}); got != "Select a valid option" {
		t.Fatalf("expected fixed choice error, got %q", got)
	}
}

func TestPasswordRules(t *testing.T) {
	s := Must("change_password")
	tests := []struct {
		value string
		want  string
	}{
		{value: "", want: "This field is required"},
		{value: "ab1!", want: "Password must be at least 6 characters"},
		{value: "abcdefg", want: "Password must contain at least one number"},
		{value: "abcdef1", want: "Password must contain at least one special character (!@#$%^&*)"},
		{value: "abcde1!", want: ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.value, func(t *testing.T) {
			got := ValidateField(s, "newPassword", Values{"newPassword": tc.value}, Env{})
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestLiveRevalidatesDependents(t *testing.T) {
	s := Must("change_password")
	if got := Affected(s, "newPassword"); len(got) != 2 || got[1] != "confirmPassword" {
		t.Fatalf("expected confirmPassword to depend on newPassword, got %v", got)
	}

	values := Values{"newPassword": "abcde1!", "confirmPassword": "abcde1!"}
	out := Live(s, "newPassword", values, Env{})
	if out["newPassword"] != "" || out["confirmPassword"] != "" {
		t.Fatalf("expected both slots cleared, got %v", out)
	}

	values["newPassword"] = "abcde2!"
	out = Live(s, "newPassword", values, Env{})
	if out["confirmPassword"] != "Passwords do not match" {
		t.Fatalf("expected mismatch on dependent slot, got %v", out)
	}

	if len(Live(s, "unknown", values, Env{})) != 0 {
		t.Fatal("unknown field should touch no slots")
	}
}

func TestConfirmPasswordComparesTrimmedValues(t *testing.T) {
	s := Must("change_password")
	tests := []struct {
		name    string
		pass    string
		confirm string
		want    string
	}{
		{name: "same padding", pass: " abcde1! ", confirm: " abcde1! ", want: ""},
		{name: "padding on one side", pass: "abcde1! ", confirm: "abcde1!", want: ""},
		{name: "different", pass: " abcde1! ", confirm: " abcde2! ", want: "Passwords do not match"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			values := Values{"newPassword": tc.pass, "confirmPassword": tc.confirm}
			if got := ValidateField(s, "confirmPassword", values, Env{}); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestWholeFormIgnoresEarlierLiveResults(t *testing.T) {
	s := Must("apply_leave")
	values := Values{"leaveTypeId": "2", "fromDate": "2024-05-01", "toDate": "2024-05-03", "description": "Family trip"}
	if out := Live(s, "toDate", values, Env{}); out["toDate"] != "" {
		t.Fatalf("expected valid live result, got %v", out)
	}
	values["fromDate"] = "2024-05-09"
	r := ValidateForm(s, values, Env{})
	if r.Errors["toDate"] != "To date cannot be before From date" {
		t.Fatalf("expected whole-form pass to re-derive toDate, got %v", r.Errors)
	}
}

func TestLeaveTypeSentinel(t *testing.T) {
	s := Must("apply_leave")
	if got := ValidateField(s, "leaveTypeId", Values{"leaveTypeId": "0"}, Env{}); got != "Please select leave type" {
		t.Fatalf("expected sentinel to count as unset, got %q", got)
	}
	if got := ValidateField(s, "leaveTypeId", Values{"leaveTypeId": "-3"}, Env{}); got != "Select a valid option" {
		t.Fatalf("expected invalid reference, got %q", got)
	}
}
