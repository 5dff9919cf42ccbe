package statement

import "regexp"

// methodPattern pairs a compiled pattern with the payment method it implies.
type methodPattern struct {
	re     *regexp.Regexp
	method string
}

// paymentMethodPatterns is scanned top to bottom; the first match wins, so
// specific brands must stay above generic catch-alls. Reordering this table
// is the supported way to adjust precedence.
var paymentMethodPatterns = []methodPattern{
	// PromptPay (พร้อมเพย์), Thai inter-bank transfer via ID/phone
	{regexp.MustCompile(`(?i)promptpay|พรอมเพย|พร้อมเพย์`), MethodPromptPay},
	// QR payments (QR- merchant prefix, QR bill payment)
	{regexp.MustCompile(`(?i)\bQR[-*]|qr\s*code|qr\s*payment|scan\s*qr|สแกน\s*qr|จ่ายบิล\s*qr|จ่ายบิล\s*bt`), MethodQRCode},
	// Line Pay / Line Man
	{regexp.MustCompile(`(?i)linepay|line\s*pay|line\s*man|liff`), MethodDigitalWallet},
	// GrabPay
	{regexp.MustCompile(`(?i)grabpay|grab\.com|grab\s*food|grab\s*express`), MethodDigitalWallet},
	// TrueMoney
	{regexp.MustCompile(`(?i)truemoney|true\s*money|tmn|เติมเงิน\s*[tw]|true\s*digital`), MethodDigitalWallet},
	// Shopee family
	{regexp.MustCompile(`(?i)shopeepay|shopeefood|shopeeth|shopee`), MethodDigitalWallet},
	// Lazada Wallet
	{regexp.MustCompile(`(?i)lazada`), MethodDigitalWallet},
	// Streaming / app-store subscriptions
	{regexp.MustCompile(`(?i)netflix|spotify|apple\.com/bill|apple\s*tv|google\s*play|google\s*one|google\s*x\b|google\s*youtube|youtube\s*premium|amazon\s*prime`), MethodSubscription},
	// Amazon marketplace (AMZ_SD / AMZ A_SD formats)
	{regexp.MustCompile(`(?i)amz[_\s]*(?:a[_\s]*)?sd|amazon[_\s]com|amzn\.com`), MethodOnline},
	// Gaming storefronts
	{regexp.MustCompile(`(?i)hoyoverse|steamgames|steam\s*games|playstation|nintendo|blizzard|riot\s*games`), MethodOnline},
	// Travel booking
	{regexp.MustCompile(`(?i)agoda\.com|agoda\b|booking\.com|airbnb|expedia`), MethodOnline},
	// OMISE payment gateway (ticketing, events)
	{regexp.MustCompile(`(?i)omise\s*\*`), MethodOnline},
	// ATM withdrawal
	{regexp.MustCompile(`(?i)\batm\b|ถอนเงน|ถอนเงิน`), MethodATM},
	// Internet / mobile banking
	{regexp.MustCompile(`(?i)internet\s*banking|web\s*bank|mobile\s*bank|ibk|payment[-\s]*(internet|scb|kbank|bbl|ktb|bay)|payment\s*received|k\s*plus|k-cash`), MethodBankTransfer},
	// Foreign merchant / currency indicator, treated as generic online
	{regexp.MustCompile(`(?i)\b(USD|EUR|GBP|JPY|SGD|CNY|HKD|AUD)\b.*[0-9]|\.(com|co\.jp|co\.uk|sg|au|th)\b|https?://`), MethodOnline},
}

// DetectPaymentMethod scans the description/channel text against the ordered
// pattern table. Returns "" when nothing matches.
func DetectPaymentMethod(text string) string {
	for _, p := range paymentMethodPatterns {
		if p.re.MatchString(text) {
			return p.method
		}
	}
	return ""
}
