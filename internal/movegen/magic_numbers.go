package movegen

// Magic multipliers for the fancy magic bitboard hashing, in square order
// A8..H1. Regenerate with cmd/chesscore-magics.

var bishopMagicNumbers = [64]uint64{
	0x5040881804408820, 0x8008100080810840, 0x0108020420220120, 0x00C8204041010000,
	0x000C03080000AB00, 0x0022086208000011, 0x0001040104410940, 0x2820404048084088,
	0x0388200801011402, 0x0021208802008022, 0x0400081204002101, 0x0020262182000028,
	0x8040020210008C40, 0x0000709010080020, 0x0C40020090841102, 0x4800022104503412,
	0x52054850A0880100, 0x890804040808CC00, 0x421010080080200B, 0x082800140411103C,
	0x1902000412020400, 0x2089005080A00102, 0x0544000080C80800, 0x1914808612008200,
	0x301008C040B22400, 0x00100837444800C0, 0x0064101002002241, 0x001508000C020520,
	0x8000840014802000, 0x0010011000880800, 0x0448021800411422, 0x2240802020820848,
	0x0001441100202004, 0x0800C80440081000, 0x080810480A900586, 0x93C0A00800050050,
	0x1405100400098020, 0x4002004201010084, 0x30820A0400022090, 0x84408D1200024210,
	0x000402A084201010, 0x0800920882212000, 0x2202020202008104, 0x0010060124014200,
	0x004090020080C812, 0x009009101900A020, 0x0020048100400200, 0x1104008620440A08,
	0x8004008444200100, 0x1020441401090106, 0x2000008410880201, 0x00E0101610440000,
	0x1482023042062000, 0x2000212082008800, 0x0241120C01021880, 0x20A80E0810510000,
	0x0120202818080800, 0x8064888401080202, 0x0000000422011001, 0x08400A0200840400,
	0xA408200862218220, 0x0280002020422080, 0x1024A22002020040, 0x801022900B420340,
}

var rookMagicNumbers = [64]uint64{
	0x0080002040008012, 0x0040400020001000, 0x0200220008401080, 0x8200041042000820,
	0x0480040002800800, 0x0300140002010008, 0x82800F0002000280, 0x0500020828804100,
	0x0809800081400020, 0x0000404000201000, 0x0622004080220012, 0x0402001009422200,
	0x4500800400800800, 0x0041800200140080, 0x0003000100040A00, 0x010600009C010052,
	0x1520008080004000, 0x0001010040008020, 0x0202420012820020, 0x0880808008001000,
	0x0800808008000400, 0x4202008002800400, 0x0800040042810810, 0x018002000041009C,
	0x08014002800080A0, 0x0070005840002000, 0x08C0100080802000, 0x4220200900100104,
	0x4000040080080080, 0x081A000280040080, 0x024001C400100208, 0x1004409200010864,
	0x8040400020800080, 0x0000402000401000, 0x0200100080802008, 0x8012000842001020,
	0x0908000880800400, 0x8944000802020010, 0x8840660904000890, 0x0C4000488A000104,
	0x0000804000218004, 0x060848201000C000, 0x2144460080220010, 0x0041100021030008,
	0x0804050008010010, 0x218200104C0A0018, 0x0800820821240010, 0x2480010080420004,
	0x0001002040800100, 0x1400402100920200, 0x00B0080400200020, 0x0000800800100080,
	0x0802003460900A00, 0x00C0020004008080, 0xA801000200842100, 0x00A0010400408200,
	0x0041018006211441, 0x0081008044122202, 0x0000102001040841, 0x0009000810000421,
	0xE402000804102002, 0x0803000400020801, 0x0000100088010204, 0x0201010084002042,
}
