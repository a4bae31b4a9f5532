/*
 * Shogo - USI shogi engine in Go for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package usi

import (
	"sort"
	"strconv"
	"strings"

	"github.com/kyo-shogi/shogo/internal/config"
)

// init sets up the usi options map with all options the engine exposes to
// the UI. Every tunable the spec leaves open (aspiration delta, LMR and
// null move parameters) is an option here rather than a constant in the
// search.
func init() {
	usiOptions = optionMap{
		"USI_Hash":           {NameID: "USI_Hash", OptionType: spin, DefaultValue: strconv.Itoa(config.Settings.Search.TTSize), MinValue: "0", MaxValue: "65536", pHandler: hashSize},
		"Clear_Hash":         {NameID: "Clear_Hash", OptionType: button, pHandler: clearHash},
		"USI_Ponder":         {NameID: "USI_Ponder", OptionType: check, DefaultValue: boolStr(config.Settings.Search.UsePonder), pHandler: usePonder},
		"OwnBook":            {NameID: "OwnBook", OptionType: check, DefaultValue: boolStr(config.Settings.Search.UseBook), pHandler: useBook},
		"BookFile":           {NameID: "BookFile", OptionType: str, DefaultValue: config.Settings.Search.BookFile, pHandler: bookFile},
		"BookFormat":         {NameID: "BookFormat", OptionType: str, DefaultValue: config.Settings.Search.BookFormat, pHandler: bookFormat},
		"Threads":            {NameID: "Threads", OptionType: spin, DefaultValue: strconv.Itoa(config.Settings.Search.Threads), MinValue: "1", MaxValue: "64", pHandler: threads},
		"Use_QSearch":        {NameID: "Use_QSearch", OptionType: check, DefaultValue: boolStr(config.Settings.Search.UseQuiescence), pHandler: useQuiescence},
		"Use_SEE":            {NameID: "Use_SEE", OptionType: check, DefaultValue: boolStr(config.Settings.Search.UseSEE), pHandler: useSee},
		"Use_TT":             {NameID: "Use_TT", OptionType: check, DefaultValue: boolStr(config.Settings.Search.UseTT), pHandler: useTT},
		"Use_TTValue":        {NameID: "Use_TTValue", OptionType: check, DefaultValue: boolStr(config.Settings.Search.UseTTValue), pHandler: useTTValue},
		"Use_Killer":         {NameID: "Use_Killer", OptionType: check, DefaultValue: boolStr(config.Settings.Search.UseKiller), pHandler: useKiller},
		"Use_HistoryCounter": {NameID: "Use_HistoryCounter", OptionType: check, DefaultValue: boolStr(config.Settings.Search.UseHistoryCounter), pHandler: useHistoryCounter},
		"Use_CounterMoves":   {NameID: "Use_CounterMoves", OptionType: check, DefaultValue: boolStr(config.Settings.Search.UseCounterMoves), pHandler: useCounterMoves},
		"Use_IID":            {NameID: "Use_IID", OptionType: check, DefaultValue: boolStr(config.Settings.Search.UseIID), pHandler: useIID},
		"Use_NullMove":       {NameID: "Use_NullMove", OptionType: check, DefaultValue: boolStr(config.Settings.Search.UseNullMove), pHandler: useNullMove},
		"NullMoveDepth":      {NameID: "NullMoveDepth", OptionType: spin, DefaultValue: strconv.Itoa(config.Settings.Search.NmpDepth), MinValue: "2", MaxValue: "10", pHandler: nmpDepth},
		"NullMoveReduction":  {NameID: "NullMoveReduction", OptionType: spin, DefaultValue: strconv.Itoa(config.Settings.Search.NmpReduction), MinValue: "1", MaxValue: "6", pHandler: nmpReduction},
		"Use_LMR":            {NameID: "Use_LMR", OptionType: check, DefaultValue: boolStr(config.Settings.Search.UseLmr), pHandler: useLmr},
		"LMRDepth":           {NameID: "LMRDepth", OptionType: spin, DefaultValue: strconv.Itoa(config.Settings.Search.LmrDepth), MinValue: "2", MaxValue: "10", pHandler: lmrDepth},
		"LMRMoves":           {NameID: "LMRMoves", OptionType: spin, DefaultValue: strconv.Itoa(config.Settings.Search.LmrMovesSearched), MinValue: "1", MaxValue: "20", pHandler: lmrMoves},
		"Use_Aspiration":     {NameID: "Use_Aspiration", OptionType: check, DefaultValue: boolStr(config.Settings.Search.UseAspiration), pHandler: useAspiration},
		"AspirationDelta":    {NameID: "AspirationDelta", OptionType: spin, DefaultValue: strconv.Itoa(config.Settings.Search.AspirationDelta), MinValue: "10", MaxValue: "200", pHandler: aspirationDelta},
		"Use_Tablebase":      {NameID: "Use_Tablebase", OptionType: check, DefaultValue: boolStr(config.Settings.Search.UseTablebase), pHandler: useTablebase},
		"TablebasePieces":    {NameID: "TablebasePieces", OptionType: spin, DefaultValue: strconv.Itoa(config.Settings.Search.TablebasePieces), MinValue: "2", MaxValue: "6", pHandler: tablebasePieces},
		"PerpetualCheckLoss": {NameID: "PerpetualCheckLoss", OptionType: check, DefaultValue: boolStr(config.Settings.Search.UsePerpetualCheckLoss), pHandler: perpetualCheckLoss},
	}
}

// usiOptions stores all available settings.
var usiOptions optionMap

// optionType is a type for the different option types.
type optionType int

const (
	check  optionType = iota
	spin   optionType = iota
	combo  optionType = iota
	button optionType = iota
	str    optionType = iota
)

// optionHandler is a function type to by used to handle set option
// commands for a specific option.
type optionHandler func(*UsiHandler, *usiOption)

// usiOption defines a data structure for a usi option.
type usiOption struct {
	NameID       string
	OptionType   optionType
	DefaultValue string
	MinValue     string
	MaxValue     string
	VarValue     string

	currentValue string
	pHandler     optionHandler
}

// optionMap convenience type for a map of pointers to usi options.
type optionMap map[string]*usiOption

// GetOptions returns all usi option as a slice of protocol lines to be
// sent to the UI, sorted by name for a stable output.
func (o *optionMap) GetOptions() *[]string {
	var options []string
	for _, opt := range *o {
		options = append(options, opt.String())
	}
	sort.Strings(options)
	return &options
}

// String for usiOption will return a representation of the option as
// required by the USI protocol during engine handshake.
func (o *usiOption) String() string {
	var os strings.Builder
	os.WriteString("option name ")
	os.WriteString(o.NameID)
	os.WriteString(" type ")
	switch o.OptionType {
	case check:
		os.WriteString("check ")
		os.WriteString("default ")
		os.WriteString(o.DefaultValue)
	case spin:
		os.WriteString("spin ")
		os.WriteString("default ")
		os.WriteString(o.DefaultValue)
		os.WriteString(" min ")
		os.WriteString(o.MinValue)
		os.WriteString(" max ")
		os.WriteString(o.MaxValue)
	case combo:
		os.WriteString("combo ")
		os.WriteString("default ")
		os.WriteString(o.DefaultValue)
		os.WriteString(" var ")
		os.WriteString(o.VarValue)
	case button:
		os.WriteString("button")
	case str:
		os.WriteString("string default ")
		os.WriteString(o.DefaultValue)
	}
	return os.String()
}

// ///////////////////////////////////////////////////////////
// Option handlers
// ///////////////////////////////////////////////////////////

func hashSize(u *UsiHandler, o *usiOption) {
	v, err := strconv.Atoi(o.currentValue)
	if err != nil {
		log.Warningf("setoption %s: invalid value %s", o.NameID, o.currentValue)
		return
	}
	config.Settings.Search.TTSize = v
	u.mySearch.ResizeCache()
}

func clearHash(u *UsiHandler, o *usiOption) {
	u.mySearch.ClearHash()
}

func usePonder(u *UsiHandler, o *usiOption) {
	config.Settings.Search.UsePonder = parseBool(o)
}

func useBook(u *UsiHandler, o *usiOption) {
	config.Settings.Search.UseBook = parseBool(o)
}

func bookFile(u *UsiHandler, o *usiOption) {
	config.Settings.Search.BookFile = o.currentValue
}

func bookFormat(u *UsiHandler, o *usiOption) {
	config.Settings.Search.BookFormat = o.currentValue
}

func threads(u *UsiHandler, o *usiOption) {
	v, err := strconv.Atoi(o.currentValue)
	if err != nil || v < 1 {
		log.Warningf("setoption %s: invalid value %s", o.NameID, o.currentValue)
		return
	}
	config.Settings.Search.Threads = v
	config.Settings.Search.UseParallel = v > 1
}

func useQuiescence(u *UsiHandler, o *usiOption) {
	config.Settings.Search.UseQuiescence = parseBool(o)
}

func useSee(u *UsiHandler, o *usiOption) {
	config.Settings.Search.UseSEE = parseBool(o)
}

func useTT(u *UsiHandler, o *usiOption) {
	config.Settings.Search.UseTT = parseBool(o)
}

func useTTValue(u *UsiHandler, o *usiOption) {
	config.Settings.Search.UseTTValue = parseBool(o)
}

func useKiller(u *UsiHandler, o *usiOption) {
	config.Settings.Search.UseKiller = parseBool(o)
}

func useHistoryCounter(u *UsiHandler, o *usiOption) {
	config.Settings.Search.UseHistoryCounter = parseBool(o)
}

func useCounterMoves(u *UsiHandler, o *usiOption) {
	config.Settings.Search.UseCounterMoves = parseBool(o)
}

func useIID(u *UsiHandler, o *usiOption) {
	config.Settings.Search.UseIID = parseBool(o)
}

func useNullMove(u *UsiHandler, o *usiOption) {
	config.Settings.Search.UseNullMove = parseBool(o)
}

func nmpDepth(u *UsiHandler, o *usiOption) {
	setIntOption(o, &config.Settings.Search.NmpDepth)
}

func nmpReduction(u *UsiHandler, o *usiOption) {
	setIntOption(o, &config.Settings.Search.NmpReduction)
}

func useLmr(u *UsiHandler, o *usiOption) {
	config.Settings.Search.UseLmr = parseBool(o)
}

func lmrDepth(u *UsiHandler, o *usiOption) {
	setIntOption(o, &config.Settings.Search.LmrDepth)
}

func lmrMoves(u *UsiHandler, o *usiOption) {
	setIntOption(o, &config.Settings.Search.LmrMovesSearched)
}

func useAspiration(u *UsiHandler, o *usiOption) {
	config.Settings.Search.UseAspiration = parseBool(o)
}

func aspirationDelta(u *UsiHandler, o *usiOption) {
	setIntOption(o, &config.Settings.Search.AspirationDelta)
}

func useTablebase(u *UsiHandler, o *usiOption) {
	config.Settings.Search.UseTablebase = parseBool(o)
}

func tablebasePieces(u *UsiHandler, o *usiOption) {
	setIntOption(o, &config.Settings.Search.TablebasePieces)
}

func perpetualCheckLoss(u *UsiHandler, o *usiOption) {
	config.Settings.Search.UsePerpetualCheckLoss = parseBool(o)
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func parseBool(o *usiOption) bool {
	return strings.EqualFold(strings.TrimSpace(o.currentValue), "true")
}

func setIntOption(o *usiOption, target *int) {
	v, err := strconv.Atoi(o.currentValue)
	if err != nil {
		log.Warningf("setoption %s: invalid value %s", o.NameID, o.currentValue)
		return
	}
	*target = v
}
