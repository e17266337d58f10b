package assistant

import (
	"fmt"
	"strings"

	"github.com/freshmarket/assistant/generator"
	"github.com/freshmarket/assistant/index"
)

const (
	// Greeting is the assistant's opening message, shown by clients before
	// the first turn.
	Greeting = "Assalomu alaykum! FreshMarket yordamchisiga xush kelibsiz. Sizga qanday yordam bera olaman?"

	// FallbackReply is the only text an end user ever sees when the
	// generation backend fails before producing output.
	FallbackReply = "Uzr, tizimda vaqtinchalik xatolik yuz berdi."

	// DefaultMaxHistoryTurns bounds how many prior turns are carried into
	// the model per request, oldest dropped first.
	DefaultMaxHistoryTurns = 20

	noMatchNote = "Hozircha mos mahsulot topilmadi."
)

// systemPromptTemplate carries the store policy. The single slot receives
// the rendered product list. The matching rules are deliberately part of
// the instruction text: which utterances count as a "found" product is
// delegated to the model, not decided in code.
const systemPromptTemplate = `Siz FreshMarket onlayn do'konining aqlli, xushmuomala va savdoga yo'naltirilgan yordamchisisiz.
Sizning asosiy vazifangiz — mijozlarga FreshMarket orqali oziq-ovqat xarid qilishda yordam berish.

QUYIDAGI QOIDALAR ENG MUHIM VA USTUVOR HISOBLANADI:

1. Javoblarni faqat o'zbek tilida bering.
2. Asosiy mavzu doim FreshMarket va oziq-ovqat savdosi bo'lsin.
3. "Mavjud mahsulotlar" — BU HAQIQIY DO'KON MAHSULOTLARI HISOBLANADI.
   Ushbu ro'yxatdagi har bir mahsulot mavjud va sotuvda bor.

MAHSULOTNI ANIQLASH QOIDASI (JUDA MUHIM):
4. Agar foydalanuvchi yozgan so'z:
   - mahsulot nomining to'liq shakliga
   - yoki qisqartmasiga
   - yoki umumiy nomiga
   MOS KELSA (masalan: "uzum" -> "Uzum (Qora)"),
   unda BU MAHSULOT MAVJUD DEB HISOBLANADI.

5. Agar mahsulot TOPILGAN bo'lsa:
   Hech qachon:
   - "Uzr, hozirda bu mahsulot bizda yo'q"
   - "Alternativa sifatida"
   kabi iboralarni ishlatmang.
   Faqat topilgan mahsulot haqida gapiring.

6. Mahsulot TOPILGANIDA:
   - Nomini aniq ayting
   - Narxini so'mda ayting
   - Qisqa tarif bering
   - Xarid qilishga undang

FAQAT quyidagi holatda "bizda yo'q" deyish mumkin:
7. Foydalanuvchi aniq mahsulot nomini aytsa
   VA u nom "Mavjud mahsulotlar" ro'yxatidagi HECH QANDAY mahsulotga mos kelmasa.

8. Agar mahsulot haqiqatan ham yo'q bo'lsa:
   - Avval uzr so'rang
   - Keyin mavjud O'XSHASH mahsulotni taklif qiling

9. Agar foydalanuvchi umumiy maslahat so'rasa
   (masalan: "nima sotib olsam ekan?", "nima bor?"):
   - Bu mahsulot qidirish EMAS
   - "bizda yo'q" deb javob bermang
   - Mashhur yoki kundalik mahsulotlarni tavsiya qiling

10. Agar foydalanuvchi faqat miqdor va o'lchov birligini yozsa
    (masalan: "2 kg", "uchta"):
    - Bu YANGI mahsulot qidiruvi EMAS
    - Suhbatda OXIRGI muhokama qilingan mahsulotga tegishli deb hisoblang
    - O'sha mahsulot bo'yicha buyurtmani davom ettiring

11. Javoblar:
    - qisqa
    - aniq
    - samimiy
    - savdoga undovchi bo'lsin
12. Narxlar faqat so'mda aytiladi.

MAVJUD MAHSULOTLAR (faqat quyidagi ro'yxatga tayaning):
%s
`

// Assemble builds the full message sequence for one completion call:
// exactly one system turn first, bounded prior history in original order,
// and the current user turn last.
func Assemble(message string, retrieved []index.Record, history []generator.Message, maxTurns int) []generator.Message {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxHistoryTurns
	}

	system := generator.Message{
		Role:    generator.RoleSystem,
		Content: fmt.Sprintf(systemPromptTemplate, renderProducts(retrieved)),
	}

	bounded := boundHistory(history, maxTurns)

	messages := make([]generator.Message, 0, len(bounded)+2)
	messages = append(messages, system)
	messages = append(messages, bounded...)
	messages = append(messages, generator.Message{
		Role:    generator.RoleUser,
		Content: message,
	})

	return messages
}

func renderProducts(records []index.Record) string {
	if len(records) == 0 {
		return noMatchNote
	}

	blocks := make([]string, len(records))
	for i, rec := range records {
		blocks[i] = fmt.Sprintf(
			"- Mahsulot: %s\n  Narxi: %s so'm\n  Kategoriya: %s\n  Qolgan: %d %s\n  Tavsif: %s",
			rec.Name,
			rec.Price,
			rec.Category,
			rec.Stock,
			rec.Unit,
			rec.Description,
		)
	}

	return strings.Join(blocks, "\n\n")
}

// boundHistory drops any stray system turns from caller-supplied history
// and keeps only the most recent maxTurns turns.
func boundHistory(history []generator.Message, maxTurns int) []generator.Message {
	kept := make([]generator.Message, 0, len(history))

	for _, turn := range history {
		if turn.Role == generator.RoleSystem {
			continue
		}
		kept = append(kept, turn)
	}

	if len(kept) > maxTurns {
		kept = kept[len(kept)-maxTurns:]
	}

	return kept
}
