package vm

// nruResetInterval is the number of instructions between periodic
// referenced-bit resets (spec.md §4.3).
const nruResetInterval = 48

// NRUPolicy implements Enhanced Second Chance: frames are classified by
// (referenced, modified) into four classes, and the lowest non-empty
// class is evicted. A periodic full-scan reset clears every referenced
// bit every nruResetInterval instructions.
type NRUPolicy struct {
	hand      int
	lastReset int
}

func NewNRUPolicy() *NRUPolicy { return &NRUPolicy{} }

func (p *NRUPolicy) Name() string { return "NRU" }

// nruClass maps (referenced, modified) to 0..3: !R!M, !RM, R!M, RM.
func nruClass(pte *PTE) int {
	class := 0
	if pte.Referenced() {
		class |= 2
	}
	if pte.Modified() {
		class |= 1
	}
	return class
}

func (p *NRUPolicy) SelectVictim(sim *Simulator) int {
	n := sim.frames.Len()
	resetting := sim.InstCount-p.lastReset >= nruResetInterval
	if resetting {
		p.lastReset = sim.InstCount
	}

	var classIndex [4]int
	for i := range classIndex {
		classIndex[i] = -1
	}

	idx := p.hand
	for scanned := 0; scanned < n; scanned++ {
		pte := sim.tenantPTE(idx)
		class := nruClass(pte)
		if classIndex[class] == -1 {
			classIndex[class] = idx
		}

		if resetting {
			pte.ClearReferenced()
		} else if class == 0 {
			break
		}

		idx = (idx + 1) % n
	}

	victim := -1
	for class := 0; class < 4; class++ {
		if classIndex[class] != -1 {
			victim = classIndex[class]
			break
		}
	}
	if victim == -1 {
		panic(invariantf("NRU scan found no victim among %d frames", n))
	}

	p.hand = (victim + 1) % n
	return victim
}
