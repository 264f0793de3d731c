package app

import (
	"fmt"
	"strings"

	"facultybot/internal/telegram"
	"facultybot/pkg/domain"
)

// Button labels and bot replies. User-facing text stays in Arabic; course
// names and the PDF token come from the course vocabulary and pass through
// untranslated.
const (
	btnStart   = "ابدأ 🎓"
	btnContact = "تواصل مع المطور 👨‍💻"
	btnUpload  = "رفع ملف جديد 📤"
	btnHome    = "🏠 القائمة الرئيسية"
	btnBack    = "⬅️ رجوع"

	suffixPDF       = "📄 PDF"
	suffixVideo     = "🎥 فيديو"
	suffixReference = "📚 مرجع"
)

const (
	msgGreeting        = "👋 مرحبًا بك في *بوت كلية الطب!*\nاختر من القائمة أدناه:"
	msgHome            = "🏠 عدت إلى القائمة الرئيسية"
	msgPickCourse      = "📚 اختر المقرر الدراسي:"
	msgBackToCourses   = "⬅️ رجعت لاختيار المقرر:"
	msgPickInstructor  = "👨‍🏫 اختر الدكتور:"
	msgSending         = "📨 جارٍ إرسال الملفات..."
	msgNothingYet      = "🚧 لم يتم العثور على هذا المحتوى بعد."
	msgNoMatch         = "🚧 لا توجد ملفات لهذا الدكتور بعد."
	msgDefault         = "🤔 لم أفهم الأمر، يرجى الاختيار من القائمة."
	msgEmptyMessage    = "⚠️ لم أفهم الرسالة."
	msgApology         = "⚠️ حدث خطأ مؤقت، حاول مرة أخرى لاحقًا."
	msgSendFile        = "📤 أرسل الآن الملف (PDF / فيديو) للبوت."
	msgAskInstructor   = "✅ تم استلام الملف!\nالآن أرسل اسم الدكتور:"
	msgFileFirst       = "📤 أرسل الملف أولًا قبل المتابعة."
	msgPickCourseAgain = "❌ مقرر غير معروف، اختر من الأزرار:"
	msgAddFileUsage    = "❌ الصيغة الصحيحة:\n`/addfile <course> <type> <file_id>`\nأو:\n`/addfile <semester> <course> <type> <file_id>`"
)

func msgPickType(course string) string {
	return fmt.Sprintf("📂 اختر نوع المحتوى لمقرر *%s*:", course)
}

func msgTypeMismatch(course string) string {
	return fmt.Sprintf("❌ نوع المحتوى لا يطابق الملف المرسل، اختر من أزرار مقرر *%s*:", course)
}

func msgCommitted(course string, ct domain.ContentType, instructor string) string {
	return fmt.Sprintf("✅ تمت إضافة %s لمقرر %s للدكتور %s بنجاح!", ct, course, instructor)
}

func msgContact(adminUsername string) string {
	return fmt.Sprintf("📩 يمكنك التواصل مع المطور عبر الحساب التالي:\n@%s", adminUsername)
}

func (a *App) mainKeyboard(isAdmin bool) *telegram.ReplyKeyboard {
	rows := [][]string{{btnStart}, {btnContact}}
	if isAdmin {
		rows = append(rows, []string{btnUpload})
	}
	return telegram.Rows(rows...)
}

func (a *App) coursesKeyboard() *telegram.ReplyKeyboard {
	rows := make([][]string, 0, len(a.courses)/2+2)
	for i := 0; i < len(a.courses); i += 2 {
		row := a.courses[i:min(i+2, len(a.courses))]
		rows = append(rows, row)
	}
	rows = append(rows, []string{btnHome})
	return telegram.Rows(rows...)
}

func typesKeyboard(course string) *telegram.ReplyKeyboard {
	return telegram.Rows(
		[]string{typeButton(course, domain.TypePDF), typeButton(course, domain.TypeVideo), typeButton(course, domain.TypeReference)},
		[]string{btnBack, btnHome},
	)
}

func instructorsKeyboard(names []string) *telegram.ReplyKeyboard {
	rows := make([][]string, 0, len(names)/2+2)
	for i := 0; i < len(names); i += 2 {
		rows = append(rows, names[i:min(i+2, len(names))])
	}
	rows = append(rows, []string{btnHome})
	return telegram.Rows(rows...)
}

func typeButton(course string, ct domain.ContentType) string {
	switch ct {
	case domain.TypeVideo:
		return course + " " + suffixVideo
	case domain.TypeReference:
		return course + " " + suffixReference
	default:
		return course + " " + suffixPDF
	}
}

// parseTypeButton recovers (course, type) from a type-selection button label.
func parseTypeButton(text string) (string, domain.ContentType, bool) {
	for suffix, ct := range map[string]domain.ContentType{
		suffixPDF:       domain.TypePDF,
		suffixVideo:     domain.TypeVideo,
		suffixReference: domain.TypeReference,
	} {
		if course, found := strings.CutSuffix(text, " "+suffix); found && course != "" {
			return course, ct, true
		}
	}
	return "", "", false
}
