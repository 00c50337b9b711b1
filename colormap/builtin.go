package colormap

import (
	"slices"
	"sync"
)

var builtinBreakpoints = map[string][]Breakpoint{
	"grey": {
		{0, Colour{0, 0, 0}},
		{1, Colour{1, 1, 1}},
	},
	"inverted": {
		{0, Colour{1, 1, 1}},
		{1, Colour{0, 0, 0}},
	},
	"iron": {
		{0, Colour{0, 0, 0}},
		{0.2, Colour{0.25, 0, 0.5}},
		{0.45, Colour{0.75, 0, 0.4}},
		{0.7, Colour{1, 0.45, 0}},
		{0.9, Colour{1, 0.85, 0.1}},
		{1, Colour{1, 1, 1}},
	},
	"rainbow": {
		{0, Colour{0, 0, 1}},
		{0.25, Colour{0, 1, 1}},
		{0.5, Colour{0, 1, 0}},
		{0.75, Colour{1, 1, 0}},
		{1, Colour{1, 0, 0}},
	},
	"hot": {
		{0, Colour{0, 0, 0}},
		{0.375, Colour{1, 0, 0}},
		{0.75, Colour{1, 1, 0}},
		{1, Colour{1, 1, 1}},
	},
	"bluered": {
		{0, Colour{0, 0, 1}},
		{0.5, Colour{1, 1, 1}},
		{1, Colour{1, 0, 0}},
	},
}

var builtinHex = map[string][]string{
	"turbo":     turboHex,
	"cubehelix": cubehelixHex,
}

var builtins = sync.OnceValue(func() map[string]*Table {
	m := make(map[string]*Table, len(builtinBreakpoints)+len(builtinHex))
	for name, bps := range builtinBreakpoints {
		m[name] = NewBreakpoints(bps)
	}
	for name, hex := range builtinHex {
		m[name] = MustParseHexTable(hex)
	}
	return m
})

// Lookup returns the built-in table with the given name.
func Lookup(name string) (*Table, bool) {
	t, ok := builtins()[name]
	return t, ok
}

// Names lists the built-in tables in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtinBreakpoints)+len(builtinHex))
	for name := range builtins() {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// turboHex samples the polynomial approximation of Google's Turbo map.
var turboHex = []string{
	"23171b", "271a28", "2b1c34", "2f1e3f", "33204a", "362355", "39255f", "3b2869",
	"3e2a72", "402c7b", "422f84", "44318c", "453494", "47379b", "4839a2", "493ca9",
	"493eaf", "4a41b5", "4a44bb", "4b46c1", "4b49c6", "4b4ccb", "4b4fcf", "4a51d3",
	"4a54d7", "4a57db", "4959df", "495ce2", "485fe5", "4762e8", "4665ea", "4567ed",
	"446aef", "436df0", "4270f2", "4172f4", "4075f5", "3f78f6", "3e7bf7", "3d7df8",
	"3b80f8", "3a83f9", "3986f9", "3888f9", "378bf9", "358ef9", "3490f8", "3393f8",
	"3296f7", "3198f6", "309bf6", "2f9ef5", "2ea0f4", "2da3f2", "2ca5f1", "2ba8f0",
	"2aaaee", "2aaded", "29afeb", "28b2ea", "28b4e8", "27b6e6", "27b9e4", "26bbe2",
	"26bde0", "25c0de", "25c2dc", "25c4da", "25c6d7", "25c8d5", "25cad3", "25cdd1",
	"25cfce", "26d1cc", "26d2c9", "26d4c7", "27d6c4", "27d8c2", "28dabf", "29dcbd",
	"2addba", "2bdfb8", "2ce1b5", "2de2b2", "2ee4b0", "2fe5ad", "30e7ab", "31e8a8",
	"33eaa6", "34eba3", "36eca0", "37ee9e", "39ef9b", "3bf099", "3df196", "3ff294",
	"41f391", "43f48f", "45f58c", "47f68a", "49f787", "4bf885", "4ef983", "50f980",
	"52fa7e", "55fa7c", "57fb79", "5afb77", "5dfc75", "5ffc73", "62fd71", "65fd6e",
	"68fd6c", "6afd6a", "6dfe68", "70fe66", "73fe64", "76fe62", "79fe60", "7cfd5e",
	"7ffd5d", "82fd5b", "85fd59", "88fc57", "8bfc56", "8efc54", "91fb52", "95fb51",
	"98fa4f", "9bf94e", "9ef94c", "a1f84b", "a4f749", "a7f648", "aaf646", "adf545",
	"b0f444", "b3f342", "b6f241", "b9f040", "bcef3f", "bfee3e", "c2ed3c", "c5eb3b",
	"c8ea3a", "cbe939", "cde738", "d0e637", "d3e436", "d5e335", "d8e134", "dbdf34",
	"ddde33", "dfdc32", "e2da31", "e4d830", "e6d630", "e9d42f", "ebd22e", "edd02d",
	"efce2d", "f1cc2c", "f3ca2b", "f4c82b", "f6c62a", "f8c42a", "f9c129", "fbbf28",
	"fcbd28", "fdba27", "ffb827", "ffb526", "ffb326", "ffb125", "ffae25", "ffac24",
	"ffa924", "ffa623", "ffa423", "ffa122", "ff9f22", "ff9c22", "ff9921", "ff9721",
	"ff9420", "ff9120", "ff8e1f", "ff8c1f", "ff891e", "ff861e", "ff831e", "ff811d",
	"ff7e1d", "ff7b1c", "ff781c", "ff751b", "ff731b", "ff701a", "fe6d1a", "fc6a1a",
	"fb6819", "f96519", "f86218", "f65f18", "f45c17", "f35a17", "f15716", "ef5416",
	"ed5215", "eb4f14", "e94c14", "e64a13", "e44713", "e24512", "e04212", "dd4011",
	"db3d10", "d83b10", "d6380f", "d3360f", "d1340e", "ce310d", "cb2f0d", "c92d0c",
	"c62b0b", "c4290b", "c1270a", "be250a", "bc2309", "b92108", "b71f08", "b41d07",
	"b11c06", "af1a06", "ac1805", "aa1704", "a81604", "a51403", "a31302", "a11202",
	"9f1101", "9d1000", "9b0f00", "9a0e00", "980e00", "960d00", "950c00", "940c00",
	"930c00", "920c00", "910b00", "910c00", "900c00", "900c00", "900c00", "900d00",}

// cubehelixHex is Green's cubehelix with start 0.5, rotations -1.5, hue 1
// and gamma 1.
var cubehelixHex = []string{
	"000000", "020102", "030103", "050205", "070206", "080308", "0a030a", "0b040c",
	"0c050e", "0e050f", "0f0611", "100713", "110815", "120817", "130919", "140a1b",
	"150b1d", "160c1f", "160d21", "170e23", "180f25", "181027", "191129", "19122b",
	"19132d", "1a142f", "1a1631", "1a1733", "1a1835", "1b1a36", "1b1b38", "1b1c3a",
	"1b1e3b", "1b1f3d", "1a213e", "1a2240", "1a2441", "1a2543", "1a2744", "192845",
	"192a46", "192c47", "192d48", "182f49", "18314a", "18324b", "17344c", "17364c",
	"17374d", "16394d", "163b4e", "163d4e", "163f4e", "16404e", "15424e", "15444f",
	"15464e", "15474e", "15494e", "154b4e", "154d4e", "154e4d", "15504d", "15524c",
	"16534c", "16554b", "16574b", "17584a", "175a49", "185b48", "195d48", "195e47",
	"1a6046", "1b6145", "1c6344", "1d6443", "1e6542", "1f6741", "206840", "22693f",
	"236a3e", "256b3d", "266c3c", "286d3b", "2a6e3a", "2b6f39", "2d7038", "2f7137",
	"317236", "337335", "357435", "387434", "3a7533", "3c7632", "3f7632", "417731",
	"447731", "467830", "497830", "4c792f", "4e792f", "51792f", "54792f", "577a2f",
	"5a7a2f", "5d7a2f", "607a2f", "637a2f", "667a30", "697b30", "6c7b31", "6f7b31",
	"727b32", "757b33", "787b34", "7b7a35", "7e7a36", "817a37", "847a38", "877a3a",
	"8a7a3b", "8d7a3d", "907a3e", "937a40", "967a42", "997944", "9c7946", "9f7948",
	"a1794a", "a4794c", "a7794f", "a97951", "ac7954", "ae7956", "b17959", "b3795b",
	"b5795e", "b77961", "b97964", "bc7967", "be796a", "bf796d", "c17a70", "c37a73",
	"c57a76", "c67a79", "c87b7c", "c97b7f", "ca7c83", "cc7c86", "cd7d89", "ce7d8c",
	"cf7e8f", "d07e93", "d17f96", "d18099", "d2809c", "d381a0", "d382a3", "d383a6",
	"d484a9", "d485ac", "d486af", "d487b2", "d588b5", "d589b8", "d48abb", "d48cbe",
	"d48dc1", "d48ec3", "d490c6", "d391c9", "d392cb", "d294ce", "d295d0", "d297d2",
	"d198d4", "d09ad7", "d09cd9", "cf9ddb", "cf9fdd", "cea1df", "cda2e0", "cca4e2",
	"cca6e4", "cba8e5", "caa9e7", "caabe8", "c9ade9", "c8afea", "c8b1ec", "c7b2ed",
	"c6b4ee", "c6b6ee", "c5b8ef", "c5baf0", "c4bcf1", "c4bdf1", "c3bff2", "c3c1f2",
	"c2c3f2", "c2c5f3", "c2c6f3", "c2c8f3", "c1caf3", "c1ccf3", "c1cdf3", "c1cff3",
	"c1d1f3", "c2d2f3", "c2d4f3", "c2d6f3", "c2d7f3", "c3d9f3", "c3daf2", "c4dcf2",
	"c4ddf2", "c5dff2", "c6e0f1", "c6e1f1", "c7e3f1", "c8e4f0", "c9e5f0", "cae7f0",
	"cbe8f0", "cce9ef", "cdeaef", "cfebef", "d0ecef", "d1edef", "d3eeef", "d4efef",
	"d6f0ef", "d7f1ef", "d9f2ef", "dbf3ef", "dcf3ef", "def4ef", "e0f5f0", "e2f6f0",
	"e3f6f0", "e5f7f1", "e7f8f1", "e9f8f2", "ebf9f3", "edfaf4", "effaf4", "f0fbf5",
	"f2fbf6", "f4fcf7", "f6fcf8", "f8fdfa", "fafdfb", "fbfefc", "fdfefe", "ffffff",}
