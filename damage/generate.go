// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package damage

//go:generate mockgen -destination=mock/mock_source.go -package=mock github.com/riftkeep/battlecore/damage Source
