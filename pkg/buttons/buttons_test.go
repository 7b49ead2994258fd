package buttons_test

import (
	"testing"

	"github.com/goliatone/go-quicksetup/pkg/buttons"
)

func TestDefine_FactoriesStampVariantAndLabel(t *testing.T) {
	var next, prev, save int
	definer := buttons.Define(
		func() { next++ },
		func() { prev++ },
		func() { save++ },
	)

	cases := []struct {
		spec    buttons.Spec
		label   string
		variant buttons.Variant
		counter *int
	}{
		{definer.Next("Continue"), "Continue", buttons.VariantNext, &next},
		{definer.Prev("Back"), "Back", buttons.VariantPrev, &prev},
		{definer.Save("Save"), "Save", buttons.VariantSave, &save},
	}

	if next != 0 || prev != 0 || save != 0 {
		t.Fatalf("building buttons must not invoke callbacks")
	}

	for _, tc := range cases {
		if tc.spec.Label != tc.label || tc.spec.Variant != tc.variant {
			t.Fatalf("unexpected spec: %+v", tc.spec)
		}
		tc.spec.Action()
		tc.spec.Action()
		if *tc.counter != 2 {
			t.Fatalf("%s: expected callback invoked twice, got %d", tc.variant, *tc.counter)
		}
	}
	if next != 2 || prev != 2 || save != 2 {
		t.Fatalf("callbacks crossed wires: next=%d prev=%d save=%d", next, prev, save)
	}
}

func TestDefine_NilCallbacksAreNoops(t *testing.T) {
	definer := buttons.Define(nil, nil, nil)
	definer.Next("Next").Press()
	definer.Prev("Prev").Action()
	buttons.Spec{}.Press()
}
