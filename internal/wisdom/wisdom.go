// Package wisdom is a fixed library of financial quotes.
package wisdom

import "math/rand/v2"

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
	Book   string `json:"book,omitempty"`
}

var quotes = []Quote{
	{Text: "Do not save what is left after spending, but spend what is left after saving.", Author: "Warren Buffett"},
	{Text: "The goal isn't more money. The goal is living life on your terms.", Author: "Chris Brogan"},
	{Text: "Beware of little expenses; a small leak will sink a great ship.", Author: "Benjamin Franklin"},
	{Text: "Money is a terrible master but an excellent servant.", Author: "P.T. Barnum"},
	{Text: "Financial freedom is available to those who learn about it and work for it.", Author: "Robert Kiyosaki", Book: "Rich Dad Poor Dad"},
	{Text: "Wealth consists not in having great possessions, but in having few wants.", Author: "Epictetus"},
	{Text: "Too many people spend money they haven't earned, to buy things they don't want, to impress people they don't like.", Author: "Will Rogers"},
	{Text: "An investment in knowledge pays the best interest.", Author: "Benjamin Franklin"},
	{Text: "The rich invest in time, the poor invest in money.", Author: "Warren Buffett"},
	{Text: "It’s not how much money you make, but how much money you keep.", Author: "Robert Kiyosaki"},
	{Text: "Annual income twenty pounds, annual expenditure nineteen nineteen and six, result happiness.", Author: "Charles Dickens"},
	{Text: "Rich people have small TVs and big libraries, and poor people have small libraries and big TVs.", Author: "Zig Ziglar"},
	{Text: "If you live for people's acceptance, you will die from their rejection.", Author: "Lecrae"},
	{Text: "You must gain control over your money or the lack of it will forever control you.", Author: "Dave Ramsey"},
	{Text: "Buy when everyone else is selling and hold until everyone else is buying.", Author: "J. Paul Getty"},
	{Text: "Opportunity is missed by most people because it is dressed in overalls and looks like work.", Author: "Thomas Edison"},
	{Text: "Never spend your money before you have it.", Author: "Thomas Jefferson"},
	{Text: "Formal education will make you a living; self-education will make you a fortune.", Author: "Jim Rohn"},
	{Text: "A budget is telling your money where to go instead of wondering where it went.", Author: "Dave Ramsey", Book: "The Total Money Makeover"},
	{Text: "Working because you want to, not because you have to, is financial freedom.", Author: "Tony Robbins"},
}

// All returns a copy of every quote in library order.
func All() []Quote {
	out := make([]Quote, len(quotes))
	copy(out, quotes)

	return out
}

// Random picks a quote using r, or the global source when r is nil.
func Random(r *rand.Rand) Quote {
	if r == nil {
		return quotes[rand.IntN(len(quotes))]
	}

	return quotes[r.IntN(len(quotes))]
}

// Carousel steps through the library, wrapping at both ends.
type Carousel struct {
	index int
}

func (c *Carousel) Current() Quote { return quotes[c.index] }
func (c *Carousel) Index() int     { return c.index }
func (c *Carousel) Len() int       { return len(quotes) }

func (c *Carousel) Next() Quote {
	c.index = (c.index + 1) % len(quotes)
	return c.Current()
}

func (c *Carousel) Prev() Quote {
	c.index = (c.index - 1 + len(quotes)) % len(quotes)
	return c.Current()
}

// Select jumps to quote i, wrapping out-of-range values.
func (c *Carousel) Select(i int) Quote {
	c.index = ((i % len(quotes)) + len(quotes)) % len(quotes)
	return c.Current()
}
