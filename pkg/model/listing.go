package model

import "time"

type Listing struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	City       string    `json:"city" bson:"city"`
	Street     string    `json:"street" bson:"street"`
	CountryTag string    `json:"country_tag" bson:"country_tag"`
	Zipcode    string    `json:"zipcode" bson:"zipcode"`
	Picture    string    `json:"picture,omitempty" bson:"picture,omitempty"`
	CreatedAt  time.Time `json:"created" bson:"created"`
}
