package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jared-cannon/app-registry/internal/models"
)

// Status messages shown by the quick registration form
const (
	LegacyMsgName    = "❌ اسم التطبيق يجب أن يكون باللغة الإنجليزية بدون فراغات."
	LegacyMsgCompany = "❌ اسم الشركة يجب أن يكون باللغة العربية فقط."
	LegacyMsgWebsite = "❌ الرجاء إدخال موقع إلكتروني صالح (URL)."
	LegacyMsgFree    = "❌ الرجاء تحديد ما إذا كان التطبيق مجانيًا."
	LegacyMsgDomain  = "❌ الرجاء اختيار مجال الاستخدام."
	LegacyMsgSummary = "❌ الرجاء إدخال شرح مختصر لا يقل عن 10 أحرف."
	LegacyMsgSuccess = "✅ تم إرسال المعلومات بنجاح! سيتم نقلك إلى صفحة التطبيقات..."
)

// The quick form keeps its own patterns; its URL rule is a pattern match,
// not a parse, and accepts inputs the registration form would reject.
var (
	legacyNameRegex    = regexp.MustCompile(`^[A-Za-z]+$`)
	legacyArabicRegex  = regexp.MustCompile(`^[\x{0600}-\x{06FF}\s]+$`)
	legacyWebsiteRegex = regexp.MustCompile(`^(https?://)[^\s$.?#].[^\s]*$`)
)

// ValidateLegacy checks the quick form rules in order and returns the status
// message of the first failing rule, or "" when the candidate passes.
// free and domain only need a selection.
func ValidateLegacy(candidate models.AppRecord) string {
	switch {
	case candidate.Name == "" || !legacyNameRegex.MatchString(candidate.Name):
		return LegacyMsgName
	case candidate.Company == "" || !legacyArabicRegex.MatchString(candidate.Company):
		return LegacyMsgCompany
	case candidate.Website == "" || !legacyWebsiteRegex.MatchString(candidate.Website):
		return LegacyMsgWebsite
	case candidate.Free == "":
		return LegacyMsgFree
	case candidate.Domain == "":
		return LegacyMsgDomain
	case candidate.Summary == "" || utf8.RuneCountInString(strings.TrimSpace(candidate.Summary)) < 10:
		return LegacyMsgSummary
	}
	return ""
}
