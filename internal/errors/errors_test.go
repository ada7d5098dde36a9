package errors

import (
	stderrors "errors"
	"testing"
)

func TestNewFromRegistry(t *testing.T) {
	err := New("E201")
	if err.Code != "E201" || err.Kind != KindHookContext {
		t.Errorf("err = %s/%s, want E201/hook", err.Code, err.Kind)
	}
	if err.Error() != "E201: Hook called outside component render" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestNewUnknownCode(t *testing.T) {
	err := New("E999")
	if err.Code != "E999" || err.Message != "Unknown error" {
		t.Errorf("err = %+v, want unknown-error fallback", err)
	}
}

func TestWith(t *testing.T) {
	err := New("E300").With("component", "App").With("phase", "mount")
	if err.Context["component"] != "App" || err.Context["phase"] != "mount" {
		t.Errorf("Context = %v", err.Context)
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := New("E700").Wrap(cause)
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause must be reachable via errors.Is")
	}
}

func TestNewf(t *testing.T) {
	err := Newf(KindValidation, "bad prop %q", "style")
	if err.Kind != KindValidation || err.Message != `bad prop "style"` {
		t.Errorf("err = %+v", err)
	}
	if err.Error() != `bad prop "style"` {
		t.Errorf("Error() = %q, codeless errors print the message alone", err.Error())
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E600") != nil {
		t.Error("FromError(nil) must be nil")
	}

	structured := New("E201")
	if got := FromError(structured, "E600"); got != structured {
		t.Error("an already structured error must pass through unchanged")
	}

	cause := stderrors.New("boom")
	got := FromError(cause, "E600")
	if got.Code != "E600" || got.Wrapped != cause {
		t.Errorf("got = %+v, want E600 wrapping the cause", got)
	}
}

func TestRegistryCodesMatchKinds(t *testing.T) {
	wantKind := map[byte]Kind{
		'1': KindRender,
		'2': KindHookContext,
		'3': KindComponent,
		'4': KindEventDispatch,
		'5': KindValidation,
		'6': KindProtocol,
		'7': KindConfig,
	}
	for code, tmpl := range registry {
		if len(code) != 4 || code[0] != 'E' {
			t.Errorf("code %q does not follow the Ennn pattern", code)
			continue
		}
		if want := wantKind[code[1]]; tmpl.Kind != want {
			t.Errorf("code %s kind = %s, want %s", code, tmpl.Kind, want)
		}
		if tmpl.Message == "" {
			t.Errorf("code %s has no message", code)
		}
	}
}
