// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package battle

import "github.com/riftkeep/battlecore/commandlog"

// phaseChanged builds a PhaseChanged event for a from->to transition; a
// small helper so every transition site states its endpoints the same way.
func phaseChanged(from, to Phase) commandlog.PhaseChanged {
	return commandlog.PhaseChanged{From: string(from), To: string(to)}
}
