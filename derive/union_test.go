package derive_test

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	oolong "github.com/WojciechMazur/oolong"
	"github.com/WojciechMazur/oolong/codec"
	"github.com/WojciechMazur/oolong/derive"
)

type paymentMethod interface{ isPaymentMethod() }

type card struct {
	Number string `bson:"number"`
}

type bankTransfer struct {
	IBAN string `bson:"iban"`
}

func (card) isPaymentMethod()         {}
func (bankTransfer) isPaymentMethod() {}

func registerPayments(t *testing.T, reg *derive.Registry) {
	t.Helper()
	derive.Register(reg, codec.String())
	err := derive.RegisterRecord(reg, func(vals []any) (card, error) {
		return card{Number: vals[0].(string)}, nil
	}, derive.FieldOf[string]("number"))
	if err != nil {
		t.Fatalf("register card: %v", err)
	}
	err = derive.RegisterRecord(reg, func(vals []any) (bankTransfer, error) {
		return bankTransfer{IBAN: vals[0].(string)}, nil
	}, derive.FieldOf[string]("iban"))
	if err != nil {
		t.Fatalf("register bank: %v", err)
	}
	err = derive.RegisterUnion[paymentMethod](reg,
		derive.VariantOf[card]("Card"),
		derive.VariantOf[bankTransfer]("BankTransfer"),
	)
	if err != nil {
		t.Fatalf("register union: %v", err)
	}
}

func TestUnion_DispatchesOnDefaultDiscriminator(t *testing.T) {
	reg := derive.NewRegistry()
	registerPayments(t, reg)
	dec := derive.MustDerive[paymentMethod](reg)

	got, err := dec.DecodeValue(bson.D{
		{Key: "_t", Value: "Card"},
		{Key: "number", Value: "4111111111111111"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	c, ok := got.(card)
	if !ok || c.Number != "4111111111111111" {
		t.Fatalf("unexpected value: %#v", got)
	}

	got, err = dec.DecodeValue(bson.D{
		{Key: "_t", Value: "BankTransfer"},
		{Key: "iban", Value: "DE89"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if b, ok := got.(bankTransfer); !ok || b.IBAN != "DE89" {
		t.Fatalf("unexpected value: %#v", got)
	}
}

func TestUnion_MissingDiscriminatorField(t *testing.T) {
	reg := derive.NewRegistry()
	registerPayments(t, reg)
	dec := derive.MustDerive[paymentMethod](reg)

	_, err := dec.DecodeValue(bson.D{{Key: "number", Value: "4111"}})
	iss, ok := oolong.AsIssues(err)
	if !ok || iss[0].Code != oolong.CodeDiscriminatorMissing {
		t.Fatalf("expected discriminator_missing, got: %v", err)
	}
	if iss[0].Path != "/_t" {
		t.Fatalf("expected path /_t, got %q", iss[0].Path)
	}
}

func TestUnion_UnknownDiscriminatorListsCandidates(t *testing.T) {
	reg := derive.NewRegistry()
	registerPayments(t, reg)
	dec := derive.MustDerive[paymentMethod](reg)

	_, err := dec.DecodeValue(bson.D{{Key: "_t", Value: "Crypto"}})
	iss, ok := oolong.AsIssues(err)
	if !ok || iss[0].Code != oolong.CodeDiscriminatorUnknown {
		t.Fatalf("expected discriminator_unknown, got: %v", err)
	}
	for _, want := range []string{"Card", "BankTransfer"} {
		if !strings.Contains(iss[0].Hint, want) {
			t.Fatalf("hint must list %q, got %q", want, iss[0].Hint)
		}
	}
	cands, _ := iss[0].Params["candidates"].([]string)
	if len(cands) != 2 || cands[0] != "Card" || cands[1] != "BankTransfer" {
		t.Fatalf("candidates must preserve declaration order, got %v", cands)
	}
}

func TestUnion_NonStringDiscriminatorFails(t *testing.T) {
	reg := derive.NewRegistry()
	registerPayments(t, reg)
	dec := derive.MustDerive[paymentMethod](reg)

	_, err := dec.DecodeValue(bson.D{{Key: "_t", Value: int64(3)}})
	if iss, ok := oolong.AsIssues(err); !ok || iss[0].Code != oolong.CodeInvalidType {
		t.Fatalf("expected invalid_type for non-string discriminator, got: %v", err)
	}
}

func TestUnion_CustomFieldAndRewrite(t *testing.T) {
	reg := derive.NewRegistry()
	derive.Discriminator[paymentMethod](reg, "kind", strings.ToLower)
	registerPayments(t, reg)
	dec := derive.MustDerive[paymentMethod](reg)

	got, err := dec.DecodeValue(bson.D{
		{Key: "kind", Value: "card"},
		{Key: "number", Value: "4111"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := got.(card); !ok {
		t.Fatalf("unexpected value: %#v", got)
	}

	// The rewritten spelling is required; the original casing no longer matches.
	_, err = dec.DecodeValue(bson.D{{Key: "kind", Value: "Card"}})
	if iss, ok := oolong.AsIssues(err); !ok || iss[0].Code != oolong.CodeDiscriminatorUnknown {
		t.Fatalf("expected discriminator_unknown, got: %v", err)
	}
}

// A second Discriminator registration for the same union is ignored: the
// first one wins.
func TestUnion_FirstDiscriminatorRegistrationWins(t *testing.T) {
	reg := derive.NewRegistry()
	derive.Discriminator[paymentMethod](reg, "kind", nil)
	derive.Discriminator[paymentMethod](reg, "flavor", nil)
	registerPayments(t, reg)
	dec := derive.MustDerive[paymentMethod](reg)

	if _, err := dec.DecodeValue(bson.D{
		{Key: "kind", Value: "Card"},
		{Key: "number", Value: "1"},
	}); err != nil {
		t.Fatalf("first registration should apply: %v", err)
	}
	_, err := dec.DecodeValue(bson.D{
		{Key: "flavor", Value: "Card"},
		{Key: "number", Value: "1"},
	})
	if iss, ok := oolong.AsIssues(err); !ok || iss[0].Code != oolong.CodeDiscriminatorMissing {
		t.Fatalf("second registration must be ignored, got: %v", err)
	}
}

// The variant decoder receives the entire original document, discriminator
// included, not a stripped view.
func TestUnion_VariantSeesWholeDocument(t *testing.T) {
	reg := derive.NewRegistry()
	derive.Register(reg, oolong.OfDocument(func(doc oolong.Document) (card, error) {
		if _, found := oolong.Lookup(doc, "_t"); !found {
			t.Errorf("variant decoder must see the discriminator key")
		}
		v, _ := oolong.Lookup(doc, "number")
		s, _ := v.(string)
		return card{Number: s}, nil
	}))
	err := derive.RegisterUnion[paymentMethod](reg, derive.VariantOf[card]("Card"))
	if err != nil {
		t.Fatalf("register union: %v", err)
	}
	dec := derive.MustDerive[paymentMethod](reg)

	got, err := dec.DecodeValue(bson.D{
		{Key: "_t", Value: "Card"},
		{Key: "number", Value: "4111"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c := got.(card); c.Number != "4111" {
		t.Fatalf("unexpected value: %#v", got)
	}
}

// Colliding rewritten names resolve to the first declared variant.
func TestUnion_CollidingRewritePicksFirstDeclared(t *testing.T) {
	reg := derive.NewRegistry()
	derive.Discriminator[paymentMethod](reg, "_t", func(string) string { return "same" })
	registerPayments(t, reg)
	dec := derive.MustDerive[paymentMethod](reg)

	got, err := dec.DecodeValue(bson.D{
		{Key: "_t", Value: "same"},
		{Key: "number", Value: "4111"},
		{Key: "iban", Value: "DE89"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := got.(card); !ok {
		t.Fatalf("first declared variant must win, got %#v", got)
	}
}
