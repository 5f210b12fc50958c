package validators

import "go.mongodb.org/mongo-driver/bson"

// datePattern matches the stored yyyy-MM-dd form of a calendar day.
const datePattern = `^[0-9]{4}-[0-9]{2}-[0-9]{2}$`

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"listing",
			"startDate",
			"endDate",
			"userEmail",
			"created",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"listing": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"startDate": bson.M{
				"bsonType": "string",
				"pattern":  datePattern,
			},

			"endDate": bson.M{
				"bsonType": "string",
				"pattern":  datePattern,
			},

			"userEmail": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 254,
			},

			"created": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var BookingLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"_id", "listing", "expires_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":        bson.M{"bsonType": "string"},
			"listing":    bson.M{"bsonType": "string"},
			"expires_at": bson.M{"bsonType": "date"},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}
