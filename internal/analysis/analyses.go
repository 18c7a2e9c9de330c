package analysis

import (
	"fmt"

	"github.com/bryanwahyu/earnings-analyst/internal/domain/earnings"
	"github.com/bryanwahyu/earnings-analyst/internal/domain/queries"
)

const (
	paymentCrypto   = "Crypto"
	levelExpert     = "Expert"
	projectsCutoff  = 100
	highEarnerFloor = 10000
)

func text(c string) earnings.Requirement   { return earnings.Requirement{Column: c, Kind: earnings.KindText} }
func number(c string) earnings.Requirement { return earnings.Requirement{Column: c, Kind: earnings.KindNumber} }

// CompareCryptoEarnings compares mean earnings of freelancers paid in crypto
// against everyone else. An empty side has a NaN mean and so does the
// difference; both are printed as NaN rather than hidden.
func CompareCryptoEarnings(ds *earnings.Dataset) (queries.Report, error) {
	if err := ds.Require(text(earnings.ColPaymentMethod), number(earnings.ColEarningsUSD)); err != nil {
		return "", err
	}
	methods, _ := ds.Text(earnings.ColPaymentMethod)
	amounts, _ := ds.Numbers(earnings.ColEarningsUSD)

	var crypto, other []float64
	for i, m := range methods {
		if m == paymentCrypto {
			crypto = append(crypto, amounts[i])
		} else {
			other = append(other, amounts[i])
		}
	}
	c, o := mean(crypto), mean(other)
	return queries.Report(fmt.Sprintf(
		"Средний доход (Crypto): $%.2f\nСредний доход (другое): $%.2f\nРазница: $%.2f",
		c, o, c-o,
	)), nil
}

// EarningsByRegion lists mean earnings per client region, highest first.
func EarningsByRegion(ds *earnings.Dataset) (queries.Report, error) {
	return groupedMean(ds, earnings.ColClientRegion, earnings.ColEarningsUSD, "Доход по регионам:")
}

// ExpertsUnder100Projects is the share of experts with fewer than 100
// completed jobs. No experts means 0%.
func ExpertsUnder100Projects(ds *earnings.Dataset) (queries.Report, error) {
	if err := ds.Require(text(earnings.ColExperienceLevel), number(earnings.ColJobCompleted)); err != nil {
		return "", err
	}
	levels, _ := ds.Text(earnings.ColExperienceLevel)
	jobs, _ := ds.Numbers(earnings.ColJobCompleted)

	experts, under := 0, 0
	for i, l := range levels {
		if l != levelExpert {
			continue
		}
		experts++
		if jobs[i] < projectsCutoff {
			under++
		}
	}
	percent := 0.0
	if experts > 0 {
		percent = float64(under) / float64(experts) * 100
	}
	return queries.Report(fmt.Sprintf("%.2f%% экспертов выполнили менее 100 проектов", percent)), nil
}

// HighEarnersRating is the mean client rating of freelancers earning more
// than $10,000. NaN when nobody does.
func HighEarnersRating(ds *earnings.Dataset) (queries.Report, error) {
	if err := ds.Require(number(earnings.ColEarningsUSD), number(earnings.ColClientRating)); err != nil {
		return "", err
	}
	amounts, _ := ds.Numbers(earnings.ColEarningsUSD)
	ratings, _ := ds.Numbers(earnings.ColClientRating)

	var picked []float64
	for i, a := range amounts {
		if a > highEarnerFloor {
			picked = append(picked, ratings[i])
		}
	}
	return queries.Report(fmt.Sprintf(
		"Средний рейтинг фрилансеров с доходом выше $10,000: %.2f", mean(picked),
	)), nil
}

// HighestAvgHourlyByPlatform names the platform with the highest mean hourly
// rate. Ties go to the platform that sorts first by name.
func HighestAvgHourlyByPlatform(ds *earnings.Dataset) (queries.Report, error) {
	if err := ds.Require(text(earnings.ColPlatform), number(earnings.ColHourlyRate)); err != nil {
		return "", err
	}
	platforms, _ := ds.Text(earnings.ColPlatform)
	rates, _ := ds.Numbers(earnings.ColHourlyRate)

	const title = "Платформа с самой высокой средней почасовой ставкой:"
	groups := meanBy(platforms, rates)
	if len(groups) == 0 {
		return queries.Report(title + " нет данных"), nil
	}
	top := groups[0]
	return queries.Report(fmt.Sprintf("%s %s ($%.2f/час)", title, top.key, top.mean)), nil
}

// ExperienceVsRehire lists the mean rehire rate per experience level.
func ExperienceVsRehire(ds *earnings.Dataset) (queries.Report, error) {
	return groupedMean(ds, earnings.ColExperienceLevel, earnings.ColRehireRate,
		"Средняя доля повторных заказов по уровням опыта:")
}

// MarketingSpendByCategory lists the mean marketing spend per job category.
func MarketingSpendByCategory(ds *earnings.Dataset) (queries.Report, error) {
	return groupedMean(ds, earnings.ColJobCategory, earnings.ColMarketingSpend,
		"Средние маркетинговые расходы по категориям:")
}

// ProjectTypeEarnings lists mean earnings per project type (fixed / hourly).
func ProjectTypeEarnings(ds *earnings.Dataset) (queries.Report, error) {
	return groupedMean(ds, earnings.ColProjectType, earnings.ColEarningsUSD,
		"Средний доход по типу проекта:")
}

func groupedMean(ds *earnings.Dataset, by, measure, title string) (queries.Report, error) {
	if err := ds.Require(text(by), number(measure)); err != nil {
		return "", err
	}
	keys, _ := ds.Text(by)
	values, _ := ds.Numbers(measure)
	return queries.Report(table(title, meanBy(keys, values))), nil
}
