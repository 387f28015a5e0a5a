package strategy

// selfConsumption charges from PV surplus and sells only what the battery
// cannot absorb; on a deficit hour it discharges first and buys the rest.
func selfConsumption(ctx Context) Decision {
	net := ctx.NetLoadKW()
	if net < 0 {
		surplus := -net
		ch := chargeLimitKW(ctx, surplus)
		return Decision{ChargeKW: ch, GridKW: -(surplus - ch)}
	}
	deficit := net
	dis := dischargeLimitKW(ctx, deficit)
	return Decision{DischargeKW: dis, GridKW: deficit - dis}
}
