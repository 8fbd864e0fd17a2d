package approval

import "fmt"

// Tier is a purchasable transcription bundle. The catalog mirrors the
// published price list; payment itself happens off-platform and is
// confirmed by the operator with a grant.
type Tier struct {
	ID       string
	Audios   int
	PriceUZS int
}

var Tiers = []Tier{
	{ID: "tier_5", Audios: 5, PriceUZS: 15000},
	{ID: "tier_9", Audios: 9, PriceUZS: 25000},
}

// FindTier looks a tier up by its callback ID.
func FindTier(id string) (Tier, bool) {
	for _, t := range Tiers {
		if t.ID == id {
			return t, true
		}
	}
	return Tier{}, false
}

// Label renders the tier the way it appears on the tariff keyboard.
func (t Tier) Label() string {
	return fmt.Sprintf("%d UZS — %d audios", t.PriceUZS, t.Audios)
}

// PaymentPendingNotice is sent to the operator when a user selects a tier.
func PaymentPendingNotice(userID string, t Tier) string {
	return fmt.Sprintf("[PAYMENT PENDING]\n\nUser: %s\nSelected tier: %s", userID, t.Label())
}

// PaymentInstructions is sent to the user who selected a tier.
func PaymentInstructions(t Tier) string {
	return fmt.Sprintf("Selected tier: %s\n\nPlease send a photo of your payment receipt. You can start using the service once the operator approves it.", t.Label())
}
