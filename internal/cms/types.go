package cms

import "fmt"

// UpstreamError reports a non-2xx response from the CMS. The status code is
// preserved so callers can pass 5xx responses through untouched.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("cms returned %d: %s", e.StatusCode, e.Message)
}

type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

type Meta struct {
	Pagination Pagination `json:"pagination"`
}

// Relation is the Strapi v4 single-relation envelope.
type Relation struct {
	Data *RelationRef `json:"data"`
}

type RelationRef struct {
	ID uint `json:"id"`
}

// ID returns the related entry ID, or 0 when the relation is unset.
func (r Relation) RefID() uint {
	if r.Data == nil {
		return 0
	}
	return r.Data.ID
}

type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type RestaurantAttrs struct {
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Cuisine    string   `json:"cuisine"`
	PriceRange string   `json:"price_range"`
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
}

type RestaurantEntry struct {
	ID         uint            `json:"id"`
	Attributes RestaurantAttrs `json:"attributes"`
}

type RestaurantListResponse struct {
	Data []RestaurantEntry `json:"data"`
	Meta Meta              `json:"meta"`
}

type AttributeAttrs struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Weight      *float64 `json:"weight"`
}

type AttributeEntry struct {
	ID         uint           `json:"id"`
	Attributes AttributeAttrs `json:"attributes"`
}

type AttributeListResponse struct {
	Data []AttributeEntry `json:"data"`
	Meta Meta             `json:"meta"`
}

type DishAttrs struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	Restaurant Relation `json:"restaurant"`
	Attributes struct {
		Data []RelationRef `json:"data"`
	} `json:"attributes"`
}

type DishEntry struct {
	ID         uint      `json:"id"`
	Attributes DishAttrs `json:"attributes"`
}

type DishListResponse struct {
	Data []DishEntry `json:"data"`
	Meta Meta        `json:"meta"`
}

type ReviewAttrs struct {
	Comment string   `json:"comment"`
	Rating  float64  `json:"rating"`
	User    Relation `json:"user"`
	Dish    Relation `json:"dish"`
}

type ReviewEntry struct {
	ID         uint        `json:"id"`
	Attributes ReviewAttrs `json:"attributes"`
}

type ReviewListResponse struct {
	Data []ReviewEntry `json:"data"`
	Meta Meta          `json:"meta"`
}

type ReviewDetailAttrs struct {
	Rating    int      `json:"rating"`
	Review    Relation `json:"review"`
	Attribute Relation `json:"attribute"`
}

type ReviewDetailEntry struct {
	ID         uint              `json:"id"`
	Attributes ReviewDetailAttrs `json:"attributes"`
}

type ReviewDetailListResponse struct {
	Data []ReviewDetailEntry `json:"data"`
	Meta Meta                `json:"meta"`
}
