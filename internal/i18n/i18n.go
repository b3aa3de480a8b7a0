// Package i18n holds the user-facing message catalogs and locale matching.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	English = "en"
	Arabic  = "ar"
)

// Message keys. Each key is also the error code surfaced to clients.
const (
	MsgBadRequest        = "bad_request"
	MsgValidation        = "validation_failed"
	MsgRemote            = "remote_error"
	MsgNoOutput          = "no_output"
	MsgAuthExpired       = "auth_expired"
	MsgNotFound          = "not_found"
	MsgForbidden         = "forbidden"
	MsgConflict          = "conflict"
	MsgUnauthorized      = "unauthorized"
	MsgCredentialMissing = "credential_missing"
	MsgTimeout           = "timeout"
	MsgInternal          = "internal"
)

var supported = []language.Tag{language.English, language.Arabic}

var matcher = language.NewMatcher(supported)

var catalog = map[string][2]string{
	MsgBadRequest:        {"The request body is malformed.", "نص الطلب غير صالح."},
	MsgValidation:        {"The request is invalid.", "الطلب غير صالح."},
	MsgRemote:            {"The generation service returned an error.", "أعادت خدمة التوليد خطأ."},
	MsgNoOutput:          {"The generation service returned no usable output.", "لم تُرجع خدمة التوليد أي نتيجة صالحة."},
	MsgAuthExpired:       {"The API key is no longer valid. Please select a key again.", "لم يعد مفتاح الواجهة صالحًا. يرجى اختيار المفتاح مجددًا."},
	MsgNotFound:          {"Not found.", "غير موجود."},
	MsgForbidden:         {"You do not have access to this resource.", "لا تملك صلاحية الوصول إلى هذا المورد."},
	MsgConflict:          {"The resource already exists.", "المورد موجود بالفعل."},
	MsgUnauthorized:      {"Authentication required.", "يلزم تسجيل الدخول."},
	MsgCredentialMissing: {"The generation service is not configured.", "خدمة التوليد غير مهيأة."},
	MsgTimeout:           {"Video generation timed out.", "انتهت مهلة توليد الفيديو."},
	MsgInternal:          {"Something went wrong.", "حدث خطأ ما."},
}

func init() {
	for key, texts := range catalog {
		_ = message.SetString(language.English, key, texts[0])
		_ = message.SetString(language.Arabic, key, texts[1])
	}
}

// Match maps a locale string such as "ar-SA" onto a supported locale. ok is
// false when nothing matched with any confidence.
func Match(raw string) (string, bool) {
	tag, err := language.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "", false
	}
	return code(idx), true
}

// MatchAcceptLanguage picks the best supported locale from an Accept-Language header.
func MatchAcceptLanguage(header string) (string, bool) {
	if strings.TrimSpace(header) == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	return code(idx), true
}

func code(idx int) string {
	if supported[idx] == language.Arabic {
		return Arabic
	}
	return English
}

// T returns the catalog text for key in locale. Unknown keys come back unchanged.
func T(locale, key string) string {
	tag := language.English
	if locale == Arabic {
		tag = language.Arabic
	}
	return message.NewPrinter(tag).Sprintf(key)
}
