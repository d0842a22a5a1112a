/*
* Monte Carlo pi estimation test module
* Copyright (C) 2025  Artem Stefankiv
*
* This program is free software: you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation, either version 3 of the License, or
* (at your option) any later version.
*
* This program is distributed in the hope that it will be useful,
* but WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
* GNU General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package cipherscan

// MonteCarloPi treats consecutive byte pairs as points in the unit square
// and returns four times the share of points inside the quarter circle.
// A trailing unpaired byte is ignored; fewer than two bytes yield 0.
func MonteCarloPi(data []byte) float64 {
	if len(data) < 2 {
		return 0
	}

	var insideCircle int
	totalPoints := len(data) / 2

	for i := 0; i < totalPoints*2; i += 2 {
		x, y := float64(data[i])/255.0, float64(data[i+1])/255.0
		if x*x+y*y <= 1 {
			insideCircle++
		}
	}

	return float64(insideCircle) / float64(totalPoints) * 4
}
