package game

// Credit adds amount to the participant's cash.
func Credit(p Participant, amount int) Participant {
	p.Cash += amount
	return p
}

// Debit subtracts amount, allowing the balance to go negative. Bankruptcy is
// detected by the caller.
func Debit(p Participant, amount int) Participant {
	p.Cash -= amount
	return p
}

// Transfer moves amount from payer to payee.
func Transfer(payer, payee Participant, amount int) (Participant, Participant) {
	return Debit(payer, amount), Credit(payee, amount)
}
