package handlers

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
)

func TestRegisterValidators_Idempotent(t *testing.T) {
	for i := 0; i < 2; i++ {
		if err := RegisterValidators(); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
}

func TestCodeSetBinding(t *testing.T) {
	if err := RegisterValidators(); err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		in      PreferenceRequest
		wantErr string
	}{
		{PreferenceRequest{}, ""},
		{PreferenceRequest{Gender: "m, F ,u", Age: "b,y,a,s", Size: "xl,XL"}, ""},
		{PreferenceRequest{Age: "b,old"}, "age: allowed values are b, y, a, s"},
		{PreferenceRequest{Size: "xxl", Gender: "x"}, "gender: allowed values are m, f, u; size: allowed values are s, m, l, xl, u"},
	}
	for _, tc := range cases {
		err := binding.Validator.ValidateStruct(tc.in)
		switch {
		case tc.wantErr == "" && err != nil:
			t.Errorf("%+v: unexpected error %v", tc.in, err)
		case tc.wantErr != "" && bindingMessage(err) != tc.wantErr:
			t.Errorf("%+v: message = %q; want %q", tc.in, bindingMessage(err), tc.wantErr)
		}
	}
}

func TestBindingMessage_NonValidationError(t *testing.T) {
	if got := bindingMessage(errors.New("unexpected EOF")); got != "invalid JSON body" {
		t.Fatalf("got %q", got)
	}
}
