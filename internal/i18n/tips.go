package i18n

import "scamshield/internal/domain/models"

var tips = map[Lang][]models.SafetyTip{
	English: {
		{Title: "Never Share OTPs", Description: "Banks and legitimate services will never ask for your OTP over phone or message."},
		{Title: "Verify Caller Identity", Description: "If someone claims to be from a bank or government, hang up and call the official number."},
		{Title: "Check URLs Carefully", Description: "Look for double extensions (.com.com) or brand names in unusual places."},
		{Title: "No Upfront Payments", Description: "Legitimate jobs, prizes, or refunds don't require you to pay money first."},
		{Title: "Trust Your Instincts", Description: "If something feels too good to be true or creates urgency, it's likely a scam."},
		{Title: "Report Suspicious Activity", Description: "Report scams to cybercrime.gov.in or call 1930 (India). Your report helps protect others."},
	},
	Hindi: {
		{Title: "OTP कभी साझा न करें", Description: "बैंक और वैध सेवाएं कभी भी फोन या संदेश पर आपका OTP नहीं मांगेंगी।"},
		{Title: "कॉलर की पहचान सत्यापित करें", Description: "अगर कोई बैंक या सरकार से होने का दावा करे, फोन काट दें और आधिकारिक नंबर पर कॉल करें।"},
		{Title: "URLs को ध्यान से जांचें", Description: "डबल एक्सटेंशन (.com.com) या असामान्य स्थानों पर ब्रांड नामों को देखें।"},
		{Title: "अग्रिम भुगतान नहीं", Description: "वैध नौकरियां, पुरस्कार या रिफंड के लिए पहले पैसे देने की आवश्यकता नहीं होती।"},
	},
	Marathi: {
		{Title: "OTP कधीही शेअर करू नका", Description: "बँक आणि वैध सेवा कधीही फोन किंवा मेसेजवर तुमचा OTP मागणार नाहीत।"},
		{Title: "कॉलरची ओळख सत्यापित करा", Description: "जर कोणी बँक किंवा सरकारमधून असल्याचा दावा करत असेल, फोन ठेवा आणि अधिकृत नंबरवर कॉल करा।"},
		{Title: "URLs काळजीपूर्वक तपासा", Description: "डबल एक्स्टेंशन (.com.com) किंवा असामान्य ठिकाणी ब्रँड नावे पहा।"},
	},
}

// Tips returns the built-in safety tips for lang. The slice is a copy.
func Tips(lang Lang) []models.SafetyTip {
	list, ok := tips[lang]
	if !ok {
		list = tips[English]
	}
	out := make([]models.SafetyTip, len(list))
	copy(out, list)
	return out
}
