package model

// Review is a user's comment on a place.
type Review struct {
	Base
	PlaceID string `json:"place_id" yaml:"place_id"`
	UserID  string `json:"user_id" yaml:"user_id"`
	Text    string `json:"text" yaml:"text"`
}

// NewReview creates a review of placeID written by userID.
func NewReview(placeID, userID, text string) *Review {
	return &Review{Base: newBase(), PlaceID: placeID, UserID: userID, Text: text}
}

func (r *Review) Kind() Kind { return KindReview }

func (r *Review) Values() []interface{} {
	return append(r.values(), r.PlaceID, r.UserID, r.Text)
}

func (r *Review) Targets() []interface{} {
	return append(r.targets(), &r.PlaceID, &r.UserID, &r.Text)
}

func (r *Review) Validate() error {
	if err := r.validate(KindReview); err != nil {
		return err
	}
	return required(KindReview, "place_id", r.PlaceID, "user_id", r.UserID, "text", r.Text)
}
