package marker

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"colorcode-receiver/internal/domain/entity"
)

func TestClassifyCorner_Buckets(t *testing.T) {
	cases := []struct {
		hue  float64
		want CornerColor
	}{
		{0, CornerA},
		{45, CornerA},
		{46, CornerB},
		{135, CornerB},
		{136, CornerC},
		{225, CornerC},
		{226, CornerD},
		{329, CornerD},
		{330, CornerA},
		{358, CornerA},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ClassifyCorner(tc.hue), "hue %v", tc.hue)
	}
}

func TestKeyForSignature_KnownSignatures(t *testing.T) {
	want := map[string]TransformKey{"ABCD": Key1, "CADB": Key2, "DCBA": Key3, "BDAC": Key4}
	for sig, key := range want {
		got, err := KeyForSignature(sig)
		require.NoError(t, err)
		require.Equal(t, key, got, sig)
	}
}

func TestKeyForSignature_RejectsEverythingElse(t *testing.T) {
	letters := "ABCD"
	rejected := 0
	for _, a := range letters {
		for _, b := range letters {
			for _, c := range letters {
				for _, d := range letters {
					sig := string([]rune{a, b, c, d})
					key, err := KeyForSignature(sig)
					switch sig {
					case "ABCD", "CADB", "DCBA", "BDAC":
						require.NoError(t, err)
					default:
						require.ErrorIs(t, err, ErrUnknownSignature)
						require.Equal(t, KeyInvalid, key)
						rejected++
					}
				}
			}
		}
	}
	require.Equal(t, 252, rejected)
}

func TestResolveOrientation_AllKeys(t *testing.T) {
	for sig, key := range signatureKeys {
		for _, n := range []int{3, 4, 6} {
			img := newCellImage(markerCells(n, sig, nil), 20)
			got, signature, err := ResolveOrientation(img, n)
			require.NoError(t, err)
			require.Equal(t, sig, signature)
			require.Equal(t, key, got)
		}
	}
}

func TestResolveOrientation_Rejected(t *testing.T) {
	img := newCellImage(markerCells(4, "AAAA", nil), 20)
	key, signature, err := ResolveOrientation(img, 4)
	require.ErrorIs(t, err, ErrUnknownSignature)
	require.Equal(t, KeyInvalid, key)
	require.Equal(t, "AAAA", signature)
}

func TestDestinationCorners_Permutations(t *testing.T) {
	size := image.Pt(500, 500)
	tl, tr := entity.Point{X: 0, Y: 0}, entity.Point{X: 500, Y: 0}
	br, bl := entity.Point{X: 500, Y: 500}, entity.Point{X: 0, Y: 500}

	want := map[TransformKey][4]entity.Point{
		Key1: {tl, tr, br, bl},
		Key2: {bl, tl, tr, br},
		Key3: {br, bl, tl, tr},
		Key4: {tr, br, bl, tl},
	}
	for key, corners := range want {
		got, err := key.DestinationCorners(size)
		require.NoError(t, err)
		require.Equal(t, corners, got)
	}

	_, err := KeyInvalid.DestinationCorners(size)
	require.Error(t, err)
	require.Equal(t, [4]entity.Point{tl, tr, br, bl}, SourceCorners(size))
}
