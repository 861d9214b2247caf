package services

import "scamshield/internal/domain/models"

// Category identifiers
const (
	CategoryDigitalArrest = "digital_arrest"
	CategoryUPIPayment    = "upi_payment"
	CategoryKYCBank       = "kyc_bank"
	CategoryLottery       = "lottery"
	CategoryJob           = "job"
	CategoryInvestment    = "investment"
	CategoryRomance       = "romance"
	CategoryTechSupport   = "tech_support"
)

// ScamCategories is the built-in category table. Order matters: on equal
// scores the earlier category wins. A keyword belongs to one category only.
var ScamCategories = []models.ScamCategory{
	{
		ID:    CategoryDigitalArrest,
		Label: "Digital Arrest Scam",
		Keywords: []string{
			"police", "arrest", "warrant", "aadhaar", "cbi",
			"customs", "narcotics", "money laundering", "video call", "court",
		},
		Tips: []string{
			"Police/CBI never demand money over phone",
			"Do not make any video calls with strangers claiming authority",
			"There is no such thing as a digital arrest. Hang up and call 1930",
		},
	},
	{
		ID:    CategoryUPIPayment,
		Label: "UPI/Payment Fraud",
		Keywords: []string{
			"upi", "upi pin", "qr code", "collect request", "payment request",
			"receive money", "scan and pay", "cashback", "refund", "paytm",
		},
		Tips: []string{
			"Never scan QR codes to receive money",
			"Do not enter UPI PIN for receiving payments",
			"Genuine refunds don't require you to pay first",
		},
	},
	{
		ID:    CategoryKYCBank,
		Label: "KYC/Bank Fraud",
		Keywords: []string{
			"kyc", "bank account", "account blocked", "suspended", "debit card",
			"credit card", "otp", "net banking", "pan card", "update your",
		},
		Tips: []string{
			"Banks never ask for OTP, PIN or card details over phone or SMS",
			"Update KYC only at your branch or in the official app",
		},
	},
	{
		ID:    CategoryLottery,
		Label: "Lottery/Prize Scam",
		Keywords: []string{
			"lottery", "winner", "prize", "jackpot", "congratulations",
			"lucky draw", "claim", "reward", "crore", "lakh",
		},
		Tips: []string{
			"You cannot win a lottery you didn't enter",
			"Legitimate prizes don't require advance payments",
		},
	},
	{
		ID:    CategoryJob,
		Label: "Job Scam",
		Keywords: []string{
			"work from home", "part time", "data entry", "typing job", "salary",
			"daily income", "easy money", "hiring", "registration fee", "job offer",
		},
		Tips: []string{
			"Legitimate jobs don't require upfront fees",
			"Research the company before sharing personal details",
		},
	},
	{
		ID:    CategoryInvestment,
		Label: "Investment Scam",
		Keywords: []string{
			"investment", "guaranteed returns", "crypto", "bitcoin", "trading",
			"double your money", "profit", "stock tips", "forex", "high returns",
		},
		Tips: []string{
			"No real investment guarantees high returns",
			"Check that the platform is registered with SEBI or RBI before investing",
		},
	},
	{
		ID:    CategoryRomance,
		Label: "Romance Scam",
		Keywords: []string{
			"dear friend", "lonely", "my love", "marry", "gift parcel",
			"western union", "send me money", "overseas", "soldier", "widow",
		},
		Tips: []string{
			"Never send money to someone you've only met online",
			"Be wary of profiles that seem too good to be true",
		},
	},
	{
		ID:    CategoryTechSupport,
		Label: "Tech Support Scam",
		Keywords: []string{
			"virus", "malware", "microsoft", "tech support", "remote access",
			"anydesk", "teamviewer", "computer", "hacked", "infected",
		},
		Tips: []string{
			"Real companies never call you about a virus on your device",
			"Never install remote access apps like AnyDesk at a caller's request",
		},
	},
}

// DefaultTips are shown when no category is eligible
var DefaultTips = []string{
	"Do not share OTP, PIN, or passwords with anyone",
	"Verify the sender through official channels",
	"Report suspicious messages to cyber crime helpline",
}

// CategoryByLabel finds a category by its display label
func CategoryByLabel(label string) (models.ScamCategory, bool) {
	for _, c := range ScamCategories {
		if c.Label == label {
			return c, true
		}
	}
	return models.ScamCategory{}, false
}
