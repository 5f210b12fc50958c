package validators

import "go.mongodb.org/mongo-driver/bson"

var ListingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"city", "street", "created"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":         bson.M{"bsonType": "objectId"},
			"city":        bson.M{"bsonType": "string"},
			"street":      bson.M{"bsonType": "string"},
			"country_tag": bson.M{"bsonType": "string"},
			"zipcode":     bson.M{"bsonType": "string"},
			"picture":     bson.M{"bsonType": "string"},
			"created":     bson.M{"bsonType": "date"},
		},
	},
}
