package extract

import (
	"regexp"
	"strings"

	"github.com/courtdata/stats-tracker/internal/entity"
	"github.com/courtdata/stats-tracker/internal/parse"
)

var periodMarkerRe = regexp.MustCompile(`P[eé]riode\s*(\d+)`)

// Rebound percentage lines print one value per team, home first. Some
// exports only print the home value.
var reboundPctRes = []struct {
	re     *regexp.Regexp
	assign func(a *entity.AdvancedStats, v int)
}{
	{regexp.MustCompile(`%\s*Rebonds\s*Offensifs\s+(\d+)\s*%(?:\s+(\d+)\s*%)?`),
		func(a *entity.AdvancedStats, v int) { a.OffReboundPct = &v }},
	{regexp.MustCompile(`%\s*Rebonds\s*D[eé]fensifs\s+(\d+)\s*%(?:\s+(\d+)\s*%)?`),
		func(a *entity.AdvancedStats, v int) { a.DefReboundPct = &v }},
	{regexp.MustCompile(`%\s*Rebond\s*Total\s+(\d+)\s*%(?:\s+(\d+)\s*%)?`),
		func(a *entity.AdvancedStats, v int) { a.TotReboundPct = &v }},
}

// The spreadsheet variant prints the advanced lines as a label cell far to
// the right of the stat grid with the value four cells later.
const (
	workbookAdvancedLabelCol = 34
	workbookAdvancedValueCol = 38
)

var workbookAdvancedCells = []struct {
	needle string
	assign func(a *entity.AdvancedStats, v int)
}{
	{"balles perdues", func(a *entity.AdvancedStats, v int) { a.PointsOffTurnovers = &v }},
	{"raquette", func(a *entity.AdvancedStats, v int) { a.PaintPoints = &v }},
	{"contre-attaque", func(a *entity.AdvancedStats, v int) { a.FastBreakPoints = &v }},
	{"chance", func(a *entity.AdvancedStats, v int) { a.SecondChancePoints = &v }},
}

// detailedBox extracts per-quarter team lines from the detailed box score.
// The PDF and spreadsheet variants share one grid layout; the spreadsheet
// omits team names entirely, so contiguous row blocks delimited by "Totaux"
// rows are attributed via the roster lookup, opponent blocks falling back
// to the placeholder label.
func (e *Extractor) detailedBox(docType entity.DocumentType, text string, tables []Table) (*entity.PartialRecord, *Report) {
	rec := &entity.PartialRecord{}
	rep := &Report{}

	if text != "" {
		matchInfo(text, rec)
		for _, ap := range advancedPairRes {
			if m := ap.re.FindStringSubmatch(text); m != nil {
				ap.assign(&rec.HomeAdvanced, parse.Int(m[1]))
				ap.assign(&rec.AwayAdvanced, parse.Int(m[2]))
			}
		}
		for _, rp := range reboundPctRes {
			if m := rp.re.FindStringSubmatch(text); m != nil {
				rp.assign(&rec.HomeAdvanced, parse.Int(m[1]))
				if m[2] != "" {
					rp.assign(&rec.AwayAdvanced, parse.Int(m[2]))
				}
			}
		}
	}

	for ti, table := range tables {
		e.periodRows(ti, table, docType, rec, rep)
	}
	return rec, rep
}

// periodRows walks one table, tracking the owning team per block and
// collecting "Période N" lines.
func (e *Extractor) periodRows(ti int, table Table, docType entity.DocumentType, rec *entity.PartialRecord, rep *Report) {
	blocks := e.teamBlocks(table)

	for ri, row := range table {
		team := blockOwner(blocks, ri)
		if team == "" {
			team = e.Cfg.OpponentLabel
		}

		first := cell(row, 0)
		if m := periodMarkerRe.FindStringSubmatch(first); m != nil {
			rep.Rows++
			period := parse.Int(m[1])
			if period < 1 || period > 4 {
				rep.skip(ti, ri, "period out of range")
				continue
			}
			rec.Periods = append(rec.Periods, periodRow(team, period, row))
		}

		if docType != entity.DocDetailedBoxWorkbook {
			continue
		}
		label := strings.ToLower(cell(row, workbookAdvancedLabelCol))
		value := cell(row, workbookAdvancedValueCol)
		if label == "" || value == "" {
			continue
		}
		for _, wa := range workbookAdvancedCells {
			if strings.Contains(label, wa.needle) {
				v := parse.Int(value)
				setTeamAdvanced(rec, team, func(a *entity.AdvancedStats) { wa.assign(a, v) })
				break
			}
		}
	}
}

// teamBlock is a contiguous run of rows owned by one team, ending at its
// "Totaux" row. Period lines print up to a few rows below the totals, so
// ownership extends past the block end.
type teamBlock struct {
	start, end int
	team       string
}

const blockTrailingRows = 10

func (e *Extractor) teamBlocks(table Table) []teamBlock {
	var blocks []teamBlock
	prev := 0
	for ri, row := range table {
		if cell(row, 0) != totalsLabel {
			continue
		}
		blocks = append(blocks, teamBlock{
			start: prev,
			end:   ri,
			team:  e.attributeBlock(table[prev:ri]),
		})
		prev = ri + 1
	}
	return blocks
}

// attributeBlock decides which team owns a block: the tracked club when any
// row names a rostered player, the opponent placeholder otherwise.
func (e *Extractor) attributeBlock(rows []([]string)) string {
	if e.Cfg.Roster != nil && e.Cfg.Teams.Canonical != "" {
		for _, row := range rows {
			if e.Cfg.Roster.Contains(cell(row, 1)) {
				return e.Cfg.Teams.Canonical
			}
		}
	}
	return e.Cfg.OpponentLabel
}

func blockOwner(blocks []teamBlock, ri int) string {
	for _, b := range blocks {
		if ri >= b.start && ri <= b.end+blockTrailingRows {
			return b.team
		}
	}
	return ""
}

// periodRow reads one quarter line. Points sit in the fourth cell; the four
// shooting splits are the slash cells before the rebound columns, in fixed
// order two-point, three-point, all field goals, free throws.
func periodRow(team string, period int, row []string) entity.PeriodStat {
	p := entity.PeriodStat{Team: team, Period: period, Points: parse.Int(cell(row, 3))}

	var splits []entity.ShotLine
	for i := 4; i <= 15 && len(splits) < 4; i++ {
		c := cell(row, i)
		if !strings.Contains(c, "/") {
			continue
		}
		made, att := parse.Fraction(c)
		splits = append(splits, entity.ShotLine{Made: made, Attempted: att})
	}
	if len(splits) == 4 {
		p.TwoPoint = splits[0]
		p.ThreePoint = splits[1]
		p.FieldGoals = splits[2]
		p.FreeThrows = splits[3]
	}

	p.OffRebounds = parse.Int(cell(row, 16))
	p.DefRebounds = parse.Int(cell(row, 17))
	p.TotRebounds = parse.Int(cell(row, 18))
	p.Assists = parse.Int(cell(row, 19))
	p.Steals = parse.Int(cell(row, 21))
	p.Turnovers = parse.Int(cell(row, 23))
	return p
}
