package morse

// CodeError is returned for characters with no mapping. It is the ERROR
// prosign, seven dits, and decodes to 'e'.
const CodeError Code = 0x0007

// Prosign aliases carried by otherwise unused lowercase keys
const (
	ProsignError      = 'e' // ERROR            .......
	ProsignInvite     = 'i' // INVITE           -.-
	ProsignUnderstood = 'u' // UNDERSTOOD       ...-.
	ProsignWait       = 'w' // WAIT             .-...
	ProsignStart      = '[' // Starting signal  -.-.-
	ProsignEndOfWork  = ']' // End of work      ...-.-
)

// letterCodes is indexed by ch - 'A'
var letterCodes = [26]Code{
	0x4002, // A : .-
	0x8004, // B : -...
	0xA004, // C : -.-.
	0x8003, // D : -..
	0x0001, // E : .
	0x2004, // F : ..-.
	0xC003, // G : --.
	0x0004, // H : ....
	0x0002, // I : ..
	0x7004, // J : .---
	0xA003, // K : -.-
	0x4004, // L : .-..
	0xC002, // M : --
	0x8002, // N : -.
	0xE003, // O : ---
	0x6004, // P : .--.
	0xD004, // Q : --.-
	0x4003, // R : .-.
	0x0003, // S : ...
	0x8001, // T : -
	0x2003, // U : ..-
	0x1004, // V : ...-
	0x6003, // W : .--
	0x9004, // X : -..-
	0xB004, // Y : -.--
	0xC004, // Z : --..
}

// digitCodes is indexed by ch - '0'
var digitCodes = [10]Code{
	0xF805, // 0 : -----
	0x7805, // 1 : .----
	0x3805, // 2 : ..---
	0x1805, // 3 : ...--
	0x0805, // 4 : ....-
	0x0005, // 5 : .....
	0x8005, // 6 : -....
	0xC005, // 7 : --...
	0xE005, // 8 : ---..
	0xF005, // 9 : ----.
}

type charCode struct {
	ch   byte
	code Code
}

// otherCodes holds punctuation and prosigns. It is scanned in order, so
// the first entry for a character wins.
var otherCodes = []charCode{
	// Punctuation
	{'.', 0x5406},  // .-.-.-
	{',', 0xCC06},  // --..--
	{'?', 0x3006},  // ..--..
	{'\'', 0x7806}, // .----.
	{'!', 0xAC06},  // -.-.--
	{'/', 0x9005},  // -..-.
	{'(', 0xB005},  // -.--.
	{')', 0xB406},  // -.--.-
	{'&', 0x4005},  // .-...
	{':', 0xE006},  // ---...
	{';', 0xA806},  // -.-.-.
	{'=', 0x8805},  // -...-
	{'+', 0x5005},  // .-.-.
	{'-', 0x8406},  // -....-
	{'_', 0x3406},  // ..--.-
	{'"', 0x4806},  // .-..-.
	{'$', 0x1207},  // ...-..-
	{'@', 0x6806},  // .--.-.

	// Prosigns
	{ProsignEndOfWork, 0x1406},  // ...-.-
	{ProsignError, 0x0007},      // .......
	{ProsignInvite, 0xA003},     // -.-
	{ProsignStart, 0xA805},      // -.-.-
	{ProsignUnderstood, 0x1005}, // ...-.
	{ProsignWait, 0x4005},       // .-...
}

// magicTable is the image of the magic index. Unreachable slots hold
// filler. Slots 62, 150 and 174 carry ':', '"' and ';'.
const magicTable = "" +
	"_EISH5ee0TNDB6-0" + //   0 - 15	e == ERROR
	"00ARLw0000MGZ700" + //  16 - 31	w == WAIT
	"000UF0000i0KC000" + //  32 - 47	i == INVITE
	"000WP000000O08:0" + //  48 - 63
	"0000Vu]00000X/00" + //  64 - 79	u == UNDERSTOOD  ] == End Of Work
	"00000+.00000Q000" + //  80 - 95
	"000000?00000Y()0" + //  96 - 111	() == Left/Right hand bracket
	"0000J0000000e900" + // 112 - 127
	"000004(c) M.R=BU" + // 128 - 143
	"RNETTE\"0000000,0" + // 144 - 159
	"00>0000000000[;0" + // 160 - 175	[ == Starting Signal
	"000000@000000000" + // 176 - 191
	"0000030000000000" + // 192 - 207
	"0000000000000000" + // 208 - 223
	"0000020000000000" + // 224 - 239
	"000001'000000000" //   240 - 255
