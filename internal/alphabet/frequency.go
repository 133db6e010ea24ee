// Package alphabet provides a letter sampler biased toward English letter frequency.
package alphabet

// Frequency is a lowercase letter and its relative weight.
type Frequency struct {
	Letter byte
	Weight int
}

// EnglishFrequencies approximates the occurrence of each letter in English
// text, in parts per ten thousand (rounded, so the total is 9995).
var EnglishFrequencies = []Frequency{
	{'e', 1260}, {'t', 937}, {'a', 834}, {'o', 770}, {'n', 680},
	{'i', 671}, {'s', 611}, {'h', 611}, {'r', 568}, {'l', 424},
	{'d', 414}, {'u', 285}, {'c', 273}, {'m', 253}, {'w', 234},
	{'y', 204}, {'f', 203}, {'g', 192}, {'p', 166}, {'b', 154},
	{'v', 106}, {'k', 87}, {'j', 23}, {'x', 20}, {'q', 9},
	{'z', 6},
}
