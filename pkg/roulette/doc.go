// Package roulette models two-agent shotgun roulette: the chamber of live
// and blank shells, both life totals, each side's ordered item inventory,
// and the pure transitions that advance a GameState.
//
// States are small comparable values. Every transition returns a new state
// and leaves its receiver untouched, which lets search code use states
// directly as map keys.
//
// A state can be written in a compact notation:
//
//	<turn><next>/<live>,<blank>/<dealer>,<player>,<max>/<dealer items>/<player items>
//
// turn is 'd' or 'p', next is '?', 'l' or 'b', and items are letters in
// acquisition order (b=beer c=cigarette m=magnifying glass s=handsaw
// h=handcuffs) or '-' when empty. For example "p?/2,2/3,3,3/bcm/c" is the
// player to act with two live and two blank shells, both sides on three of
// three lives, the dealer holding beer, cigarette and magnifier, the player
// a cigarette.
package roulette
