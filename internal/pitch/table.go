package pitch

// NoteTable maps a MIDI note number to the compare value of the audio
// timer that plays it, for a 12 MHz clock and a 1/8 prescaler. Notes
// too low for the 16-bit timer are pinned at its maximum.
var NoteTable = [128]uint16{
	65535, 65535, 65535, 65535, 65535, 65535, 64865, 61224,
	57788, 54544, 51483, 48593, 45866, 43292, 40862, 38568,
	36404, 34360, 32432, 30612, 28893, 27272, 25741, 24296,
	22933, 21645, 20430, 19284, 18201, 17180, 16215, 15305,
	14446, 13635, 12870, 12148, 11466, 10822, 10215, 9641,
	9100, 8589, 8107, 7652, 7223, 6817, 6435, 6073,
	5732, 5411, 5107, 4820, 4550, 4294, 4053, 3826,
	3611, 3408, 3217, 3036, 2866, 2705, 2553, 2410,
	2274, 2147, 2026, 1912, 1805, 1704, 1608, 1518,
	1432, 1352, 1276, 1204, 1137, 1073, 1013, 956,
	902, 851, 803, 758, 716, 675, 637, 602,
	568, 536, 506, 477, 450, 425, 401, 379,
	357, 337, 318, 300, 283, 267, 252, 238,
	225, 212, 200, 189, 178, 168, 159, 150,
	141, 133, 126, 119, 112, 106, 100, 94,
	89, 84, 79, 74, 70, 66, 62, 59,
}

// NotePeriod returns the timer period of note. Notes above 127 are
// clamped to the top of the table.
func NotePeriod(note uint8) uint16 {
	if note > 127 {
		note = 127
	}
	return NoteTable[note]
}
