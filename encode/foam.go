package encode

import (
	"regexp"
	"strings"

	"github.com/sdict-format/go-sdict/dict"
	"github.com/sdict-format/go-sdict/ir"
)

// FoamEncoder serializes the OpenFOAM restriction of the native
// format: double quotes throughout, the OpenFOAM header banner, and no
// entries OpenFOAM would misread, which here means every key starting
// with an underscore is dropped.
type FoamEncoder struct {
	native NativeEncoder
}

func NewFoamEncoder() *FoamEncoder {
	return &FoamEncoder{native: NativeEncoder{style: quoteStyle{preferSingle: false}}}
}

func (e *FoamEncoder) String(d *dict.Dict) (string, error) {
	root := d.Root.Clone()
	dropUnderscoreKeys(root)
	return e.native.render(d, root, foamHeader)
}

func dropUnderscoreKeys(n *ir.Node) {
	for i := 0; i < len(n.Keys); {
		if strings.HasPrefix(n.Keys[i].String(), "_") {
			n.Delete(n.Keys[i])
			continue
		}
		if n.Values[i].Type == ir.MapType {
			dropUnderscoreKeys(n.Values[i])
		}
		i++
	}
}

const foamBanner = `/*--------------------------------*- C++ -*----------------------------------*\
| =========                 |                                                 |
| \\      /  F ield         | OpenFOAM: The Open Source CFD Toolbox           |
|  \\    /   O peration     | Version:  dev                                   |
|   \\  /    A nd           | Web:      www.OpenFOAM.com                      |
|    \\/     M anipulation  |                                                 |
\*---------------------------------------------------------------------------*/
FoamFile
{
    version                   2.0;
    format                    ascii;
    class                     dictionary;
    object                    foamDict;
}
// * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * //
`

var openFOAMRx = regexp.MustCompile(`OpenFOAM`)

// foamHeader forces the OpenFOAM banner: a comment not already
// mentioning OpenFOAM is replaced by the banner outright.
func foamHeader(comment string) string {
	if !cppBannerRx.MatchString(comment) {
		comment = foamBanner + comment
	}
	if !openFOAMRx.MatchString(comment) {
		comment = foamBanner
	}
	return comment
}
