package validation

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/zzincafe/zzincafe-server/internal/errors"
)

func runChains(t *testing.T, body map[string]string, chains ...*Chain) *apperrors.ValidationError {
	t.Helper()
	err := Run(context.Background(), MapSource{Body: body}, chains...)
	if err == nil {
		return nil
	}
	ve := apperrors.GetValidationError(err)
	if ve == nil {
		t.Fatalf("expected validation error, got %v", err)
	}
	return ve
}

func TestFalsy(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  bool
	}{
		{"absent", Value{}, true},
		{"empty string", Value{Raw: "", Present: true}, true},
		{"zero", Value{Raw: "0", Present: true}, true},
		{"null", Value{Raw: "null", Present: true}, true},
		{"undefined", Value{Raw: "undefined", Present: true}, true},
		{"false", Value{Raw: "false", Present: true}, true},
		{"plain value", Value{Raw: "hello", Present: true}, false},
		{"numeric nonzero", Value{Raw: "1", Present: true}, false},
		{"whitespace", Value{Raw: " ", Present: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := falsy(tt.value); got != tt.want {
				t.Errorf("falsy(%q) = %v, want %v", tt.value.Raw, got, tt.want)
			}
		})
	}
}

func TestNameChain(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"minimum length", "abc", true},
		{"maximum length", "abcdefghijklmnop", true},
		{"too short", "ab", false},
		{"too long", "abcdefghijklmnopq", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := runChains(t, map[string]string{"name": tt.value}, Name())
			if tt.valid && ve != nil {
				t.Errorf("expected %q to pass, got %v", tt.value, ve.Violations)
			}
			if !tt.valid && ve == nil {
				t.Errorf("expected %q to fail", tt.value)
			}
		})
	}
}

func TestEmailChain(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.example.co", true},
		{"no-at-sign", false},
		{"user@", false},
		{"@example.com", false},
		{"user@example", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			ve := runChains(t, map[string]string{"email": tt.value}, Email())
			if tt.valid && ve != nil {
				t.Errorf("expected %q to pass, got %v", tt.value, ve.Violations)
			}
			if !tt.valid && ve == nil {
				t.Errorf("expected %q to fail", tt.value)
			}
		})
	}
}

func TestPasswordChain(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"all classes", "abcd123!", true},
		{"sixteen chars", "abcdefgh1234!@#$", true},
		{"too short", "ab1!", false},
		{"too long", "abcdefgh1234!@#$x", false},
		{"no lowercase", "ABCD123!", false},
		{"no digit", "abcdefg!", false},
		{"no special", "abcd1234", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := runChains(t, map[string]string{"password": tt.value}, Password())
			if tt.valid && ve != nil {
				t.Errorf("expected %q to pass, got %v", tt.value, ve.Violations)
			}
			if !tt.valid && ve == nil {
				t.Errorf("expected %q to fail", tt.value)
			}
		})
	}
}

func TestPhoneChain(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"010-1234-5678", true},
		{"011-123-4567", true},
		{"016-9999-0000", true},
		{"02-1234-5678", false},
		{"0101234-5678", false},
		{"010-12345-678", false},
		{"010-1234-567", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			ve := runChains(t, map[string]string{"phone_number": tt.value}, PhoneNumber())
			if tt.valid && ve != nil {
				t.Errorf("expected %q to pass, got %v", tt.value, ve.Violations)
			}
			if !tt.valid && ve == nil {
				t.Errorf("expected %q to fail", tt.value)
			}
		})
	}
}

func TestContentChain(t *testing.T) {
	long := make([]rune, 61)
	for i := range long {
		long[i] = 'a'
	}

	if ve := runChains(t, map[string]string{"content": string(long[:60])}, Content()); ve != nil {
		t.Errorf("60-char content should pass, got %v", ve.Violations)
	}
	if ve := runChains(t, map[string]string{"content": string(long)}, Content()); ve == nil {
		t.Error("61-char content should fail")
	}
}

func TestPasswordConfirmationMatchesSibling(t *testing.T) {
	body := map[string]string{
		"password":              "abcd123!",
		"password_confirmation": "abcd123!",
	}
	if ve := runChains(t, body, Password(), PasswordConfirmation()); ve != nil {
		t.Errorf("matching confirmation should pass, got %v", ve.Violations)
	}

	body["password_confirmation"] = "other123!"
	ve := runChains(t, body, Password(), PasswordConfirmation())
	if ve == nil {
		t.Fatal("mismatching confirmation should fail")
	}
	if ve.First().Field != "password_confirmation" {
		t.Errorf("violation field = %q, want password_confirmation", ve.First().Field)
	}
}

// A field's rules stop at the first failure but every chain still runs, so
// the result carries one violation per failing field in chain order.
func TestPerFieldEarlyExitAndAllChainsEvaluated(t *testing.T) {
	body := map[string]string{
		"name":  "",
		"email": "not-an-email",
	}

	ve := runChains(t, body, Name(), Email())
	if ve == nil {
		t.Fatal("expected violations")
	}
	if len(ve.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %d: %v", len(ve.Violations), ve.Violations)
	}

	// The name chain stopped at Required; its length rule never reported.
	if ve.Violations[0].Field != "name" || ve.Violations[0].Message != "name is required" {
		t.Errorf("first violation = %+v, want name required", ve.Violations[0])
	}
	if ve.Violations[1].Field != "email" {
		t.Errorf("second violation field = %q, want email", ve.Violations[1].Field)
	}
}

func TestReportFirstEnvelopeMessage(t *testing.T) {
	ve := runChains(t, map[string]string{}, Name(), Email(), Password())
	if ve == nil {
		t.Fatal("expected violations")
	}
	if got := apperrors.GetErrorMessage(ve); got != "name is required" {
		t.Errorf("envelope message = %q, want first violation", got)
	}
}

func TestIDParamChain(t *testing.T) {
	src := MapSource{Params: map[string]string{"cafeId": "42"}}
	if err := Run(context.Background(), src, IDParam("cafeId")); err != nil {
		t.Errorf("integer param should pass, got %v", err)
	}

	src.Params["cafeId"] = "abc"
	if err := Run(context.Background(), src, IDParam("cafeId")); err == nil {
		t.Error("non-integer param should fail")
	}
}

// A slow Check rule must complete before Run returns a verdict.
func TestAsyncCheckIsAwaited(t *testing.T) {
	done := false
	slow := func(ctx context.Context, v Value, _ Source) (bool, error) {
		timer := time.NewTimer(10 * time.Millisecond)
		defer timer.Stop()
		select {
		case <-timer.C:
			done = true
			return v.Raw == "taken", nil
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	ve := runChains(t, map[string]string{"email": "user@example.com"},
		Email().Check(slow, "email is already in use"))
	if !done {
		t.Fatal("verdict produced before the check completed")
	}
	if ve != nil {
		t.Errorf("expected pass, got %v", ve.Violations)
	}
}

// A probe that errors aborts the run with INTERNAL_ERROR instead of a
// field verdict.
func TestProbeFailureAbortsRun(t *testing.T) {
	failing := func(context.Context, Value, Source) (bool, error) {
		return false, errors.New("store down")
	}

	err := Run(context.Background(),
		MapSource{Body: map[string]string{"email": "user@example.com"}},
		Email().Check(failing, "email is already in use"))
	if err == nil {
		t.Fatal("expected error")
	}
	if apperrors.GetValidationError(err) != nil {
		t.Error("probe failure must not surface as a validation verdict")
	}
	if apperrors.Code(err) != apperrors.CodeInternal {
		t.Errorf("code = %q, want INTERNAL_ERROR", apperrors.Code(err))
	}
}
