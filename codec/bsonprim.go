package codec

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	oolong "github.com/WojciechMazur/oolong"
)

// Time decodes a BSON datetime into time.Time. Documents built by hand may
// carry time.Time directly; those pass through.
func Time() oolong.Decoder[time.Time] {
	return oolong.DecoderFunc[time.Time](func(v oolong.Value) (time.Time, error) {
		switch t := v.(type) {
		case primitive.DateTime:
			return t.Time(), nil
		case time.Time:
			return t, nil
		}
		return time.Time{}, typeMismatch("datetime", v)
	})
}

// ObjectID decodes a BSON ObjectId.
func ObjectID() oolong.Decoder[primitive.ObjectID] {
	return oolong.DecoderFunc[primitive.ObjectID](func(v oolong.Value) (primitive.ObjectID, error) {
		if id, ok := v.(primitive.ObjectID); ok {
			return id, nil
		}
		return primitive.NilObjectID, typeMismatch("objectId", v)
	})
}

// Binary decodes a BSON binary into its payload bytes, ignoring the subtype.
func Binary() oolong.Decoder[[]byte] {
	return oolong.DecoderFunc[[]byte](func(v oolong.Value) ([]byte, error) {
		switch b := v.(type) {
		case primitive.Binary:
			return b.Data, nil
		case []byte:
			return b, nil
		}
		return nil, typeMismatch("binary", v)
	})
}

// Decimal128 decodes a BSON 128-bit decimal.
func Decimal128() oolong.Decoder[primitive.Decimal128] {
	return oolong.DecoderFunc[primitive.Decimal128](func(v oolong.Value) (primitive.Decimal128, error) {
		if d, ok := v.(primitive.Decimal128); ok {
			return d, nil
		}
		return primitive.Decimal128{}, typeMismatch("decimal128", v)
	})
}
